// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
)

// DecodeValue converts a wire value into a metric value of the declared type.
//
// Counters carry the raw unsigned reading. Gauges are scale*x+shift, where x is the
// signed reading for INTEGER values and the unsigned one otherwise. Strings are
// parsed as they are, without scale and shift. On failure the returned value is
// the type's sentinel (counter 0, gauge NaN) together with a *DecodeError.
func DecodeValue(w WireValue, typ metrix.MetricType, scale, shift float64) (metrix.Value, error) {
	switch w.Kind {
	case WireInt32, WireUint32, WireCounter32, WireGauge32, WireTimeTicks, WireCounter64:
		if typ == metrix.Counter {
			return metrix.CounterUint(w.unsigned), nil
		}
		if w.Signed() {
			return metrix.GaugeFloat(scale*float64(w.signed) + shift), nil
		}
		return metrix.GaugeFloat(scale*float64(w.unsigned) + shift), nil
	case WireOctetString, WireBitString, WireIPAddress:
		text, _ := w.Printable()
		return parseNumeric(w.Kind, text, typ)
	default:
		return sentinel(typ), &DecodeError{Kind: w.Kind, ASN: w.asn}
	}
}

func parseNumeric(kind WireKind, text string, typ metrix.MetricType) (metrix.Value, error) {
	s := strings.TrimSpace(text)

	if typ == metrix.Counter {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return sentinel(typ), &DecodeError{Kind: kind, Text: text, Err: err}
		}
		return metrix.CounterUint(v), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sentinel(typ), &DecodeError{Kind: kind, Text: text, Err: err}
	}
	return metrix.GaugeFloat(v), nil
}

func sentinel(typ metrix.MetricType) metrix.Value {
	if typ == metrix.Counter {
		return metrix.CounterUint(0)
	}
	return metrix.Undefined(metrix.Gauge)
}

// Printable renders the value as label text: integers in decimal, addresses in
// their usual notation, byte strings as is unless they contain control
// characters, in which case they become lowercase hex pairs joined by ':'.
func (w WireValue) Printable() (string, error) {
	switch w.Kind {
	case WireInt32:
		return strconv.FormatInt(int64(w.signed), 10), nil
	case WireUint32, WireCounter32, WireGauge32, WireTimeTicks, WireCounter64:
		return strconv.FormatUint(w.unsigned, 10), nil
	case WireIPAddress:
		if addr, ok := netip.AddrFromSlice(w.bytes); ok {
			return addr.String(), nil
		}
		return hexString(w.bytes), nil
	case WireOctetString, WireBitString:
		for _, c := range w.bytes {
			if c < 32 {
				return hexString(w.bytes), nil
			}
		}
		return string(w.bytes), nil
	default:
		return "", &DecodeError{Kind: w.Kind, ASN: w.asn}
	}
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"

	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteByte(digits[c>>4])
		sb.WriteByte(digits[c&0x0f])
	}
	return sb.String()
}
