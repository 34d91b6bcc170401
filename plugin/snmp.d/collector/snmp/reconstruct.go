// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"github.com/snmpcollect/snmpcollect/pkg/matcher"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/oid"
)

// joinSpec is the input of mergeJoin. value drives the join; filter may be nil.
type joinSpec struct {
	value   *column
	filter  *column
	match   matcher.Matcher
	labels  []*column
	base    metrix.Labels
	countOn bool
}

type joinResult struct {
	rows  []metrix.Metric
	count uint64
}

// mergeJoin assembles rows from the walked columns by exact suffix equality.
// Every column is sorted by suffix, so one cursor per column is enough. A value
// suffix missing from any other column is a gap and the row is skipped. Columns
// the agent rejected before yielding any cell take no part in the join.
func mergeJoin(spec joinSpec) joinResult {
	var res joinResult

	if spec.value == nil || len(spec.value.cells) == 0 {
		return res
	}

	filterAt := -1
	var others []*column
	if spec.filter != nil && !skipInJoin(spec.filter) {
		filterAt = len(others)
		others = append(others, spec.filter)
	}
	labelsAt := make([]int, len(spec.labels))
	for i, col := range spec.labels {
		labelsAt[i] = -1
		if !skipInJoin(col) {
			labelsAt[i] = len(others)
			others = append(others, col)
		}
	}

	cursors := make([]int, len(others))

ROWS:
	for _, vc := range spec.value.cells {
		gap := false

		for i, col := range others {
			for cursors[i] < len(col.cells) && oid.Compare(col.cells[cursors[i]].suffix, vc.suffix) < 0 {
				cursors[i]++
			}
			if cursors[i] == len(col.cells) {
				break ROWS
			}
			if oid.Compare(col.cells[cursors[i]].suffix, vc.suffix) > 0 {
				gap = true
			}
		}
		if gap {
			continue
		}

		if filterAt >= 0 && spec.match != nil {
			if !spec.match.MatchString(others[filterAt].cells[cursors[filterAt]].text) {
				continue
			}
		}

		if spec.countOn {
			res.count++
			continue
		}

		ls := spec.base.Clone()
		for i, col := range spec.labels {
			if at := labelsAt[i]; at >= 0 {
				ls.Set(col.name, others[at].cells[cursors[at]].text)
			}
		}
		res.rows = append(res.rows, metrix.Metric{Labels: ls, Value: vc.value})
	}

	return res
}

func skipInJoin(col *column) bool {
	return col.rejected && len(col.cells) == 0
}

// countMetric carries the number of matched rows with the type of the data.
func countMetric(typ metrix.MetricType, base metrix.Labels, count uint64) metrix.Metric {
	v := metrix.GaugeFloat(float64(count))
	if typ == metrix.Counter {
		v = metrix.CounterUint(count)
	}
	return metrix.Metric{Labels: base.Clone(), Value: v}
}
