// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"net/netip"

	"github.com/gosnmp/gosnmp"
)

// WireKind is the protocol-level encoding of a value.
type WireKind uint8

const (
	WireUnsupported WireKind = iota
	WireInt32
	WireUint32
	WireCounter32
	WireGauge32
	WireTimeTicks
	WireCounter64
	WireOctetString
	WireBitString
	WireIPAddress
)

func (k WireKind) String() string {
	switch k {
	case WireInt32:
		return "int32"
	case WireUint32:
		return "uint32"
	case WireCounter32:
		return "counter32"
	case WireGauge32:
		return "gauge32"
	case WireTimeTicks:
		return "timeticks"
	case WireCounter64:
		return "counter64"
	case WireOctetString:
		return "octet string"
	case WireBitString:
		return "bit string"
	case WireIPAddress:
		return "ip address"
	default:
		return "unsupported"
	}
}

// WireValue is one decoded varbind value. Exactly one of the payload fields is
// meaningful, selected by Kind.
type WireValue struct {
	Kind WireKind

	signed   int32
	unsigned uint64
	bytes    []byte
	asn      gosnmp.Asn1BER
}

func Int32(v int32) WireValue { return WireValue{Kind: WireInt32, signed: v, unsigned: uint64(uint32(v))} }

// Uint32 builds one of the unsigned 32-bit kinds.
func Uint32(kind WireKind, v uint32) WireValue {
	switch kind {
	case WireUint32, WireCounter32, WireGauge32, WireTimeTicks:
	default:
		kind = WireUint32
	}
	return WireValue{Kind: kind, unsigned: uint64(v)}
}

// Counter64 composes a 64-bit counter from its high and low halves.
func Counter64(high, low uint32) WireValue {
	return WireValue{Kind: WireCounter64, unsigned: uint64(high)<<32 | uint64(low)}
}

func OctetString(b []byte) WireValue { return WireValue{Kind: WireOctetString, bytes: b} }
func BitString(b []byte) WireValue   { return WireValue{Kind: WireBitString, bytes: b} }
func IPAddress(b []byte) WireValue   { return WireValue{Kind: WireIPAddress, bytes: b} }

func Unsupported(asn gosnmp.Asn1BER) WireValue { return WireValue{Kind: WireUnsupported, asn: asn} }

// Signed reports whether the agent sent a signed integer.
func (w WireValue) Signed() bool { return w.Kind == WireInt32 }

// FromPDU converts a gosnmp varbind value.
func FromPDU(pdu gosnmp.SnmpPDU) WireValue {
	switch pdu.Type {
	case gosnmp.Integer:
		if v, ok := toInt64(pdu.Value); ok {
			return Int32(int32(v))
		}
	case gosnmp.Uinteger32, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks:
		if v, ok := toInt64(pdu.Value); ok {
			return Uint32(uint32Kind(pdu.Type), uint32(v))
		}
	case gosnmp.Counter64:
		if v, ok := pdu.Value.(uint64); ok {
			return Counter64(uint32(v>>32), uint32(v))
		}
		if v, ok := toInt64(pdu.Value); ok {
			return Counter64(uint32(uint64(v)>>32), uint32(v))
		}
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return OctetString(b)
		}
	case gosnmp.BitString:
		if b, ok := pdu.Value.([]byte); ok {
			return BitString(b)
		}
	case gosnmp.IPAddress:
		switch v := pdu.Value.(type) {
		case string:
			if addr, err := netip.ParseAddr(v); err == nil {
				return IPAddress(addr.AsSlice())
			}
		case []byte:
			return IPAddress(v)
		}
	}
	return Unsupported(pdu.Type)
}

func uint32Kind(asn gosnmp.Asn1BER) WireKind {
	switch asn {
	case gosnmp.Counter32:
		return WireCounter32
	case gosnmp.Gauge32:
		return WireGauge32
	case gosnmp.TimeTicks:
		return WireTimeTicks
	default:
		return WireUint32
	}
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

// isEndOfData reports the exception values an agent uses to say a walk is over.
func isEndOfData(pdu gosnmp.SnmpPDU) bool {
	switch pdu.Type {
	case gosnmp.EndOfMibView, gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return true
	default:
		return false
	}
}
