// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import "time"

// Metric is one sample of a family.
type Metric struct {
	Labels Labels
	Value  Value
	Time   time.Time
}

// MetricFamily groups samples that share a name, help text and type.
type MetricFamily struct {
	Name    string
	Help    string
	Type    MetricType
	Metrics []Metric
}

func NewMetricFamily(name, help string, typ MetricType) *MetricFamily {
	return &MetricFamily{Name: name, Help: help, Type: typ}
}

func (mf *MetricFamily) Add(m Metric) {
	mf.Metrics = append(mf.Metrics, m)
}

func (mf *MetricFamily) Len() int { return len(mf.Metrics) }
