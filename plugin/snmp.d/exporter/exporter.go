// SPDX-License-Identifier: GPL-3.0-or-later

package exporter

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
)

const (
	namespace = "snmpcollect"

	// hostLabel names the polled host on every exported row, unless the row already carries it.
	hostLabel = "host"
)

// Exporter keeps the latest batch of every host and serves it in the Prometheus
// exposition format, next to a few self metrics about polling.
type Exporter struct {
	*logger.Logger

	mu      sync.RWMutex
	batches map[string]snmp.Batch

	registry *prometheus.Registry
	polls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	families *prometheus.GaugeVec
}

func New() *Exporter {
	e := &Exporter{
		batches:  make(map[string]snmp.Batch),
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Polls of a host by result.",
		}, []string{hostLabel, "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent polling a host.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{hostLabel}),
		families: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dispatched_families",
			Help:      "Metric families in the latest batch of a host.",
		}, []string{hostLabel}),
	}
	e.registry.MustRegister(e.polls, e.duration, e.families, (*batchCollector)(e))
	return e
}

// Dispatch replaces the stored batch of the host. Rows of a family that repeat an
// earlier row's label set are dropped here, so the registry never sees the same series twice.
func (e *Exporter) Dispatch(b snmp.Batch) {
	b.Families = e.dedup(b.Host, b.Families)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.batches[b.Host] = b
	e.families.WithLabelValues(b.Host).Set(float64(len(b.Families)))
}

// Forget drops everything known about a host that is no longer polled.
func (e *Exporter) Forget(host string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.batches, host)
	e.polls.DeletePartialMatch(prometheus.Labels{hostLabel: host})
	e.duration.DeletePartialMatch(prometheus.Labels{hostLabel: host})
	e.families.DeletePartialMatch(prometheus.Labels{hostLabel: host})
}

// ObservePoll records the outcome of one poll.
func (e *Exporter) ObservePoll(host string, took time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	e.polls.WithLabelValues(host, status).Inc()
	e.duration.WithLabelValues(host).Observe(took.Seconds())
}

// Handler serves the exposition. A row that cannot be exported is logged and
// left out without failing the whole scrape.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{
		ErrorLog:      errorLog{e.Logger},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// WriteText writes the current exposition in the text format.
func (e *Exporter) WriteText(w io.Writer) error {
	mfs, err := e.registry.Gather()
	if err != nil {
		e.Warningf("gather: %v", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family '%s': %v", mf.GetName(), err)
		}
	}
	return nil
}

// dedup keeps the first row of every label set within a family. The input families are not modified.
func (e *Exporter) dedup(host string, families []*metrix.MetricFamily) []*metrix.MetricFamily {
	out := make([]*metrix.MetricFamily, 0, len(families))

	for _, mf := range families {
		seen := make(map[string]bool, len(mf.Metrics))
		var dups int
		for _, m := range mf.Metrics {
			key := m.Labels.String()
			if seen[key] {
				dups++
			}
			seen[key] = true
		}
		if dups == 0 {
			out = append(out, mf)
			continue
		}

		e.Warningf("host '%s' family '%s': %d row(s) repeat the label set of an earlier row and are dropped, "+
			"add 'labels_from' to tell the rows apart", host, mf.Name, dups)

		uniq := metrix.NewMetricFamily(mf.Name, mf.Help, mf.Type)
		clear(seen)
		for _, m := range mf.Metrics {
			key := m.Labels.String()
			if !seen[key] {
				seen[key] = true
				uniq.Add(m)
			}
		}
		out = append(out, uniq)
	}
	return out
}

type errorLog struct{ l *logger.Logger }

func (l errorLog) Println(v ...any) { l.l.Warning(v...) }

// batchCollector exports the stored batches. It describes nothing up front:
// the set of families changes with the configuration.
type batchCollector Exporter

func (c *batchCollector) Describe(chan<- *prometheus.Desc) {}

func (c *batchCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, fam := range c.merge() {
		for _, row := range fam.rows {
			desc := prometheus.NewDesc(fam.name, fam.help, fam.keys, nil)

			m, err := prometheus.NewConstMetric(desc, valueType(fam.typ), row.value, row.labelValues(fam.keys)...)
			if err != nil {
				ch <- prometheus.NewInvalidMetric(desc, err)
				continue
			}
			if !row.time.IsZero() {
				m = prometheus.NewMetricWithTimestamp(row.time, m)
			}
			ch <- m
		}
	}
}

type (
	exportFamily struct {
		name string
		help string
		typ  metrix.MetricType
		keys []string
		rows []exportRow
	}
	exportRow struct {
		labels map[string]string
		value  float64
		time   time.Time
	}
)

// merge groups the rows of every host by family name. Help and type come from the
// first host (in name order) that dispatched the family. Rows of one family may
// carry different label keys, so every row is exported with the union of keys,
// missing ones set to the empty string.
func (c *batchCollector) merge() []*exportFamily {
	hosts := make([]string, 0, len(c.batches))
	for host := range c.batches {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	byName := make(map[string]*exportFamily)
	var order []*exportFamily
	keySets := make(map[string]map[string]bool)

	for _, host := range hosts {
		for _, mf := range c.batches[host].Families {
			fam, ok := byName[mf.Name]
			if !ok {
				fam = &exportFamily{name: mf.Name, help: mf.Help, typ: mf.Type}
				byName[mf.Name] = fam
				order = append(order, fam)
				keySets[mf.Name] = make(map[string]bool)
			}

			for _, m := range mf.Metrics {
				labels := m.Labels.Map()
				if _, ok := labels[hostLabel]; !ok {
					labels[hostLabel] = host
				}
				for k := range labels {
					keySets[mf.Name][k] = true
				}
				fam.rows = append(fam.rows, exportRow{labels: labels, value: m.Value.Float64(), time: m.Time})
			}
		}
	}

	for _, fam := range order {
		for k := range keySets[fam.name] {
			fam.keys = append(fam.keys, k)
		}
		sort.Strings(fam.keys)
	}
	return order
}

func (r exportRow) labelValues(keys []string) []string {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = r.labels[k]
	}
	return values
}

func valueType(typ metrix.MetricType) prometheus.ValueType {
	if typ == metrix.Counter {
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}
