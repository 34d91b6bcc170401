// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"context"
	"errors"

	"github.com/gosnmp/gosnmp"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/oid"
)

type columnState uint8

const (
	columnActive columnState = iota
	columnLeftSubtree
)

type (
	// cell is one walked instance of a column. Label and filter columns fill text,
	// the value column fills value.
	cell struct {
		suffix oid.OID
		text   string
		value  metrix.Value
	}

	column struct {
		name    string
		root    oid.OID
		isValue bool

		state    columnState
		rejected bool // the agent refused the column's OID with an error status
		cursor   oid.OID
		last     oid.OID
		cells    []cell
	}
)

func newColumn(name string, root oid.OID, isValue bool) *column {
	return &column{name: name, root: root, isValue: isValue, cursor: root}
}

func (c *column) leave() { c.state = columnLeftSubtree }

// walker drives a set of columns to the end of their subtrees with batched
// GETNEXT or GETBULK requests.
type walker struct {
	*logger.Logger

	sess     *session
	bulkSize int

	typ   metrix.MetricType
	scale float64
	shift float64
}

func (w *walker) walk(ctx context.Context, cols []*column) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		requested := activeColumns(cols)
		if len(requested) == 0 {
			return nil
		}

		oids := make([]string, len(requested))
		for i, idx := range requested {
			oids[i] = cols[idx].cursor.String()
		}

		var pkt *gosnmp.SnmpPacket
		var err error
		if w.bulkSize > 0 {
			pkt, err = w.sess.getBulk(oids, maxRepetitions(w.bulkSize, len(requested)))
		} else {
			pkt, err = w.sess.getNext(oids)
		}

		if err != nil {
			var perr *ProtocolError
			if !errors.As(err, &perr) || perr.Index < 0 || perr.Index >= len(requested) {
				return err
			}
			col := cols[requested[perr.Index]]
			w.Debugf("column '%s' (%s): %v, removing it from the walk", col.name, col.root, err)
			col.rejected = len(col.cells) == 0
			col.leave()
			continue
		}

		if !w.consume(cols, requested, pkt.Variables) {
			// nothing in the response belongs to a requested column, asking again would loop
			for _, idx := range requested {
				if col := cols[idx]; col.state == columnActive {
					w.Debugf("column '%s' (%s): no varbind in response", col.name, col.root)
					col.leave()
				}
			}
		}
	}
}

// consume hands every varbind to the column that requested it and reports whether
// any requested column was answered. An agent may truncate a GETBULK response to fit
// its message size; a column left without a varbind keeps its cursor and is asked
// again by the next request.
func (w *walker) consume(cols []*column, requested []int, vars []gosnmp.SnmpPDU) bool {
	var answered bool

	for slot, pdu := range vars {
		idx := bulkColumnIndex(slot, requested)
		if idx < 0 {
			continue
		}
		answered = true

		if col := cols[idx]; col.state == columnActive {
			w.accept(col, pdu)
		}
	}

	return answered
}

func (w *walker) accept(col *column, pdu gosnmp.SnmpPDU) {
	if isEndOfData(pdu) {
		col.leave()
		return
	}

	o, err := oid.Parse(pdu.Name)
	if err != nil || !col.root.IsStrictPrefixOf(o) {
		col.leave()
		return
	}

	suffix, _ := oid.Suffix(col.root, o)
	if col.last != nil && oid.Compare(suffix, col.last) <= 0 {
		w.Warningf("column '%s' (%s): agent returned non-increasing OID %s after suffix %s",
			col.name, col.root, o, col.last)
		col.leave()
		return
	}
	col.last = suffix
	col.cursor = o

	wv := FromPDU(pdu)

	if col.isValue {
		v, err := DecodeValue(wv, w.typ, w.scale, w.shift)
		if err != nil {
			w.logDecodeError(o, err)
		}
		col.cells = append(col.cells, cell{suffix: suffix, value: v})
		return
	}

	text, err := wv.Printable()
	if err != nil {
		w.logDecodeError(o, err)
	}
	col.cells = append(col.cells, cell{suffix: suffix, text: text})
}

func (w *walker) logDecodeError(o oid.OID, err error) {
	logDecodeError(w.Logger, o, err)
}

func logDecodeError(l *logger.Logger, o oid.OID, err error) {
	var derr *DecodeError
	if errors.As(err, &derr) && derr.IsNull() {
		l.Infof("OID %s is undefined (type NULL)", o)
		return
	}
	l.Warningf("OID %s: %v", o, err)
}

func activeColumns(cols []*column) []int {
	var idx []int
	for i, col := range cols {
		if col.state == columnActive {
			idx = append(idx, i)
		}
	}
	return idx
}
