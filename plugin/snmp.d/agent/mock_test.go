// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"sync"
	"time"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
)

type mockPoller struct {
	host string

	mu       sync.Mutex
	polls    int
	cleanups int
	err      error
	panicMsg string
}

func (m *mockPoller) Poll(_ context.Context, d snmp.Dispatcher) error {
	m.mu.Lock()
	m.polls++
	err, panicMsg := m.err, m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if err != nil {
		return err
	}

	mf := metrix.NewMetricFamily("snmp_up", "Agent answered.", metrix.Gauge)
	mf.Add(metrix.Metric{Value: metrix.GaugeFloat(1)})
	d.Dispatch(snmp.Batch{Host: m.host, Families: []*metrix.MetricFamily{mf}})
	return nil
}

func (m *mockPoller) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups++
}

func (m *mockPoller) pollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}

func (m *mockPoller) cleanupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanups
}

type mockSink struct {
	mu        sync.Mutex
	batches   []snmp.Batch
	observed  map[string][]error
	forgotten []string
}

func newMockSink() *mockSink {
	return &mockSink{observed: make(map[string][]error)}
}

func (s *mockSink) Dispatch(b snmp.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, b)
}

func (s *mockSink) ObservePoll(host string, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observed[host] = append(s.observed[host], err)
}

func (s *mockSink) Forget(host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forgotten = append(s.forgotten, host)
}

func (s *mockSink) forgottenHosts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.forgotten...)
}

func (s *mockSink) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

// pollerFactory hands out mock pollers and remembers them by host.
type pollerFactory struct {
	mu      sync.Mutex
	pollers map[string][]*mockPoller
	failFor map[string]error
}

func newPollerFactory() *pollerFactory {
	return &pollerFactory{pollers: make(map[string][]*mockPoller), failFor: make(map[string]error)}
}

func (f *pollerFactory) new(cfg snmp.Config, _ snmp.Definitions) (poller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor[cfg.Name]; err != nil {
		return nil, err
	}
	p := &mockPoller{host: cfg.Name}
	f.pollers[cfg.Name] = append(f.pollers[cfg.Name], p)
	return p, nil
}

func (f *pollerFactory) created(host string) []*mockPoller {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*mockPoller(nil), f.pollers[host]...)
}
