// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"context"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
)

func (c *Collector) collectTable(ctx context.Context, item *dataItem) ([]metrix.Metric, error) {
	def := item.def

	// request order: label columns, filter, value
	cols := make([]*column, 0, def.columns())
	labels := make([]*column, 0, len(def.LabelsFrom))
	for _, src := range def.LabelsFrom {
		col := newColumn(src.Name, src.OID, false)
		labels = append(labels, col)
		cols = append(cols, col)
	}

	var filter *column
	if def.FilterOID != nil {
		filter = newColumn("filter", def.FilterOID, false)
		cols = append(cols, filter)
	}

	value := newColumn("value", def.ValueOID, true)
	cols = append(cols, value)

	w := &walker{
		Logger:   c.Logger,
		sess:     c.sess,
		bulkSize: c.bulkSize,
		typ:      def.Type,
		scale:    def.Scale,
		shift:    def.Shift,
	}
	if err := w.walk(ctx, cols); err != nil {
		return nil, err
	}

	if value.rejected {
		c.Debugf("data '%s': value OID %s was rejected by the agent", def.Name, def.ValueOID)
		if def.CountOnly {
			return []metrix.Metric{countMetric(def.Type, item.labels, 0)}, nil
		}
		return nil, nil
	}

	res := mergeJoin(joinSpec{
		value:   value,
		filter:  filter,
		match:   def.Filter,
		labels:  labels,
		base:    item.labels,
		countOn: def.CountOnly,
	})

	if def.CountOnly {
		return []metrix.Metric{countMetric(def.Type, item.labels, res.count)}, nil
	}
	return res.rows, nil
}
