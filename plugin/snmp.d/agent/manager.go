// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/pkg/ticker"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
)

func newCollector(cfg snmp.Config, defs snmp.Definitions) (poller, error) {
	collr := snmp.New()
	collr.Config = cfg
	collr.Logger = logger.New().With(slog.String("host", cfg.Name))
	if err := collr.Init(defs); err != nil {
		return nil, err
	}
	return collr, nil
}

// manager owns the running jobs and ticks them once a second.
type manager struct {
	*logger.Logger

	sink      Sink
	newPoller func(snmp.Config, snmp.Definitions) (poller, error)

	mu   sync.Mutex
	jobs map[string]*Job
	wg   conc.WaitGroup
}

func newManager(sink Sink) *manager {
	return &manager{
		Logger:    logger.New().With(slog.String("component", "job manager")),
		sink:      sink,
		newPoller: newCollector,
		jobs:      make(map[string]*Job),
	}
}

// apply brings the running jobs in line with s. Jobs whose hash did not change keep running.
func (m *manager) apply(s *Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(s.Hosts))

	for _, entry := range s.Hosts {
		name := entry.Config.Name
		seen[name] = true

		old, running := m.jobs[name]
		if running && old.hash == entry.Hash {
			continue
		}
		if running {
			m.Infof("host '%s': configuration changed, restarting", name)
			old.Stop()
			delete(m.jobs, name)
		}

		p, err := m.newPoller(entry.Config, s.Defs)
		if err != nil {
			m.Errorf("host '%s': %v", name, err)
			if running {
				m.sink.Forget(name)
			}
			continue
		}

		job := newJob(entry, p, m.sink)
		m.jobs[name] = job
		m.wg.Go(job.Start)
	}

	for name, job := range m.jobs {
		if seen[name] {
			continue
		}
		m.Infof("host '%s': removed from configuration, stopping", name)
		job.Stop()
		delete(m.jobs, name)
		m.sink.Forget(name)
	}
}

func (m *manager) run(ctx context.Context) {
	tk := ticker.New(time.Second)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case clock := <-tk.C:
			m.mu.Lock()
			for _, job := range m.jobs {
				job.Tick(clock)
			}
			m.mu.Unlock()
		}
	}
}

// stopAll stops every job and waits for their goroutines.
func (m *manager) stopAll() {
	m.mu.Lock()
	for name, job := range m.jobs {
		job.Stop()
		delete(m.jobs, name)
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *manager) jobNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	return names
}
