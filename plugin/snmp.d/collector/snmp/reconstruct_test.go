// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snmpcollect/snmpcollect/pkg/matcher"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
)

func rowsAsMap(rows []metrix.Metric) map[string]float64 {
	m := make(map[string]float64, len(rows))
	for _, r := range rows {
		m[r.Labels.String()] = r.Value.Float64()
	}
	return m
}

func TestMergeJoin(t *testing.T) {
	tests := map[string]struct {
		spec     func() joinSpec
		wantRows map[string]float64
	}{
		"gap in label column skips the row": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(map[string]float64{"1": 10, "2": 20, "3": 30}),
					labels: []*column{textColumn("name", map[string]string{"1": "a", "3": "c"})},
				}
			},
			wantRows: map[string]float64{
				`{name="a"}`: 10,
				`{name="c"}`: 30,
			},
		},
		"label column exhausted stops the join": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(map[string]float64{"1": 10, "2": 20, "3": 30}),
					labels: []*column{textColumn("name", map[string]string{"1": "a"})},
				}
			},
			wantRows: map[string]float64{
				`{name="a"}`: 10,
			},
		},
		"label column with extra instances": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(map[string]float64{"2": 20}),
					labels: []*column{textColumn("name", map[string]string{"1": "a", "2": "b", "3": "c"})},
				}
			},
			wantRows: map[string]float64{
				`{name="b"}`: 20,
			},
		},
		"multi component suffixes compare numerically": {
			spec: func() joinSpec {
				return joinSpec{
					value: valueColumn(map[string]float64{"1.2": 12, "1.10": 110, "2.1": 21}),
					labels: []*column{textColumn("peer", map[string]string{
						"1.2": "p12", "1.10": "p110", "2.1": "p21",
					})},
				}
			},
			wantRows: map[string]float64{
				`{peer="p12"}`:  12,
				`{peer="p110"}`: 110,
				`{peer="p21"}`:  21,
			},
		},
		"filter drops rows": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(map[string]float64{"1": 10, "2": 20, "3": 30}),
					filter: textColumn("filter", map[string]string{"1": "eth0", "2": "lo", "3": "eth1"}),
					match:  matcher.Must(matcher.NewGlobMatcher("eth*")),
					labels: []*column{textColumn("name", map[string]string{"1": "eth0", "2": "lo", "3": "eth1"})},
				}
			},
			wantRows: map[string]float64{
				`{name="eth0"}`: 10,
				`{name="eth1"}`: 30,
			},
		},
		"base labels are overridden by column labels": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(map[string]float64{"1": 1}),
					labels: []*column{textColumn("name", map[string]string{"1": "eth0"})},
					base:   metrix.LabelsFromMap(map[string]string{"name": "static", "site": "dc1"}),
				}
			},
			wantRows: map[string]float64{
				`{name="eth0",site="dc1"}`: 1,
			},
		},
		"rejected label column takes no part": {
			spec: func() joinSpec {
				rejected := textColumn("alias", nil)
				rejected.rejected = true
				return joinSpec{
					value:  valueColumn(map[string]float64{"1": 10, "2": 20}),
					labels: []*column{rejected, textColumn("name", map[string]string{"1": "a", "2": "b"})},
				}
			},
			wantRows: map[string]float64{
				`{name="a"}`: 10,
				`{name="b"}`: 20,
			},
		},
		"empty value column": {
			spec: func() joinSpec {
				return joinSpec{
					value:  valueColumn(nil),
					labels: []*column{textColumn("name", map[string]string{"1": "a"})},
				}
			},
			wantRows: map[string]float64{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			res := mergeJoin(test.spec())

			assert.Equal(t, test.wantRows, rowsAsMap(res.rows))
			assert.Zero(t, res.count)
		})
	}
}

func TestMergeJoin_countWithFilter(t *testing.T) {
	res := mergeJoin(joinSpec{
		value:   valueColumn(map[string]float64{"1": 10, "2": 20, "3": 30}),
		labels:  []*column{textColumn("name", map[string]string{"1": "a", "3": "c"})},
		filter:  textColumn("filter", map[string]string{"1": "up", "2": "down", "3": "testing"}),
		match:   matcher.Must(matcher.NewStringMatcher("up", true, true)),
		countOn: true,
	})

	assert.Equal(t, uint64(1), res.count)
	assert.Empty(t, res.rows)
}

func TestMergeJoin_rowsAreSortedBySuffix(t *testing.T) {
	res := mergeJoin(joinSpec{
		value:  valueColumn(map[string]float64{"10": 10, "2": 2, "1": 1}),
		labels: []*column{textColumn("i", map[string]string{"1": "1", "2": "2", "10": "10"})},
	})

	var got []string
	for _, r := range res.rows {
		v, _ := r.Labels.Get("i")
		got = append(got, v)
	}
	assert.Equal(t, []string{"1", "2", "10"}, got)
}

func TestCountMetric(t *testing.T) {
	base := metrix.LabelsFromMap(map[string]string{"site": "dc1"})

	counter := countMetric(metrix.Counter, base, 0)
	assert.Equal(t, metrix.CounterUint(0), counter.Value)
	assert.Equal(t, base, counter.Labels)

	gauge := countMetric(metrix.Gauge, base, 3)
	assert.Equal(t, metrix.GaugeFloat(3), gauge.Value)
}
