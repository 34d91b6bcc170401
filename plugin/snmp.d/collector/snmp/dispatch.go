// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"time"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
)

type (
	// Batch is everything one poll of one host produced.
	Batch struct {
		CycleID  string
		Host     string
		Time     time.Time
		Families []*metrix.MetricFamily
	}

	// Dispatcher receives the result of every successful poll.
	Dispatcher interface {
		Dispatch(Batch)
	}

	DispatcherFunc func(Batch)
)

func (f DispatcherFunc) Dispatch(b Batch) { f(b) }

// newFamily names the family after the host prefix and the data metric and stamps every row.
func (c *Collector) newFamily(def *Definition, metrics []metrix.Metric, ts time.Time) *metrix.MetricFamily {
	mf := metrix.NewMetricFamily(c.MetricPrefix+def.Metric, def.Help, def.Type)
	mf.Metrics = make([]metrix.Metric, 0, len(metrics))
	for _, m := range metrics {
		m.Time = ts
		mf.Add(m)
	}
	return mf
}
