// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
)

const (
	penaltyStep = 5
	maxPenalty  = 600
)

type (
	// Sink receives what the jobs produce.
	Sink interface {
		snmp.Dispatcher
		ObservePoll(host string, took time.Duration, err error)
		Forget(host string)
	}

	poller interface {
		Poll(ctx context.Context, d snmp.Dispatcher) error
		Cleanup()
	}
)

// Job polls one host every updateEvery ticks.
type Job struct {
	*logger.Logger

	name        string
	hash        uint64
	updateEvery int
	poller      poller
	sink        Sink

	retries int

	ctx    context.Context
	cancel context.CancelFunc
	tick   chan int
	stop   chan struct{}
}

func newJob(entry HostEntry, p poller, sink Sink) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	return &Job{
		Logger:      logger.New().With(slog.String("host", entry.Config.Name)),
		name:        entry.Config.Name,
		hash:        entry.Hash,
		updateEvery: entry.UpdateEvery,
		poller:      p,
		sink:        sink,
		ctx:         ctx,
		cancel:      cancel,
		tick:        make(chan int),
		stop:        make(chan struct{}),
	}
}

func (j *Job) Name() string { return j.name }

// Tick hands the clock to the job unless the previous poll is still running.
func (j *Job) Tick(clock int) {
	select {
	case j.tick <- clock:
	default:
		j.Debug("skip the tick due to previous run hasn't been finished")
	}
}

// Start runs the job main loop until Stop.
func (j *Job) Start() {
	j.Infof("started, polling interval %ds", j.updateEvery)
	defer func() { j.Info("stopped") }()

LOOP:
	for {
		select {
		case <-j.stop:
			break LOOP
		case t := <-j.tick:
			if t%(j.updateEvery+j.penalty()) == 0 {
				j.runOnce()
			}
		}
	}
	j.poller.Cleanup()
	j.stop <- struct{}{}
}

// Stop aborts a running poll and blocks until the main loop exits.
func (j *Job) Stop() {
	j.cancel()
	j.stop <- struct{}{}
	<-j.stop
}

func (j *Job) runOnce() {
	start := time.Now()
	err := j.poll()
	j.sink.ObservePoll(j.name, time.Since(start), err)

	if err != nil {
		j.retries++
	} else {
		j.retries = 0
	}
}

func (j *Job) poll() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			j.Errorf("PANIC: %v", r)
			if logger.Level.Enabled(slog.LevelDebug) {
				j.Errorf("STACK: %s", debug.Stack())
			}
		}
	}()

	ctx, cancel := context.WithTimeout(j.ctx, time.Duration(j.updateEvery)*time.Second)
	defer cancel()

	return j.poller.Poll(ctx, j.sink)
}

// penalty stretches the interval of a host that keeps failing.
func (j *Job) penalty() int {
	v := j.retries / penaltyStep * penaltyStep * j.updateEvery / 2
	if v > maxPenalty {
		return maxPenalty
	}
	return v
}
