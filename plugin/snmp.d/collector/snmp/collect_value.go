// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"context"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/oid"
)

func (c *Collector) collectValue(ctx context.Context, item *dataItem) ([]metrix.Metric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	def := item.def

	oids := make([]string, 0, def.columns())
	oids = append(oids, def.ValueOID.String())
	for _, src := range def.LabelsFrom {
		oids = append(oids, src.OID.String())
	}

	pkt, err := c.sess.get(oids)
	if err != nil {
		return nil, err
	}

	value := metrix.Undefined(def.Type)
	var found bool
	labels := item.labels.Clone()

	for _, pdu := range pkt.Variables {
		o, err := oid.Parse(pdu.Name)
		if err != nil {
			continue
		}

		if o.Equal(def.ValueOID) {
			v, err := DecodeValue(FromPDU(pdu), def.Type, def.Scale, def.Shift)
			if err != nil {
				logDecodeError(c.Logger, o, err)
			}
			value, found = v, true
			continue
		}

		for _, src := range def.LabelsFrom {
			if !o.Equal(src.OID) {
				continue
			}
			text, err := FromPDU(pdu).Printable()
			if err != nil {
				logDecodeError(c.Logger, o, err)
				continue
			}
			labels.Set(src.Name, text)
		}
	}

	if !found {
		c.Warningf("data '%s': response has no value for OID %s", def.Name, def.ValueOID)
	}

	return []metrix.Metric{{Labels: labels, Value: value}}, nil
}
