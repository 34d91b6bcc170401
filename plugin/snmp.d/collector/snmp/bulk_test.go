// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBulkColumnIndex(t *testing.T) {
	tests := map[string]struct {
		requested []int
		slots     int
		want      []int
	}{
		"all columns active": {
			requested: []int{0, 1, 2},
			slots:     7,
			want:      []int{0, 1, 2, 0, 1, 2, 0},
		},
		"middle column dropped before the request": {
			requested: []int{0, 2},
			slots:     5,
			want:      []int{0, 2, 0, 2, 0},
		},
		"single column": {
			requested: []int{3},
			slots:     3,
			want:      []int{3, 3, 3},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var got []int
			for slot := 0; slot < test.slots; slot++ {
				got = append(got, bulkColumnIndex(slot, test.requested))
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestBulkColumnIndex_invalid(t *testing.T) {
	assert.Equal(t, -1, bulkColumnIndex(0, nil))
	assert.Equal(t, -1, bulkColumnIndex(-1, []int{0}))
}

func TestMaxRepetitions(t *testing.T) {
	tests := map[string]struct {
		bulkSize int
		active   int
		want     uint32
	}{
		"even split":            {bulkSize: 30, active: 3, want: 10},
		"rounds down":           {bulkSize: 10, active: 3, want: 3},
		"never below one":       {bulkSize: 2, active: 5, want: 1},
		"budget equals columns": {bulkSize: 4, active: 4, want: 1},
		"no active columns":     {bulkSize: 10, active: 0, want: 1},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, maxRepetitions(test.bulkSize, test.active))
		})
	}
}
