// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import (
	"math"
	"strconv"
	"strings"
)

// MetricType is the semantic type of a sample.
type MetricType uint8

const (
	Unknown MetricType = iota
	Gauge
	Counter
)

func (t MetricType) String() string {
	switch t {
	case Gauge:
		return "gauge"
	case Counter:
		return "counter"
	default:
		return "unknown"
	}
}

// ParseMetricType accepts "gauge" and "counter" in any case.
func ParseMetricType(s string) (MetricType, bool) {
	switch strings.ToLower(s) {
	case "gauge":
		return Gauge, true
	case "counter":
		return Counter, true
	default:
		return Unknown, false
	}
}

type numKind uint8

const (
	kindFloat numKind = iota
	kindUint
	kindInt
)

// Value is a typed sample: a counter holds an unsigned integer or a float,
// a gauge holds a signed integer or a float. The zero Value is undefined.
type Value struct {
	typ  MetricType
	kind numKind
	u    uint64
	i    int64
	f    float64
}

func CounterUint(v uint64) Value   { return Value{typ: Counter, kind: kindUint, u: v} }
func CounterFloat(v float64) Value { return Value{typ: Counter, kind: kindFloat, f: v} }
func GaugeInt(v int64) Value       { return Value{typ: Gauge, kind: kindInt, i: v} }
func GaugeFloat(v float64) Value   { return Value{typ: Gauge, kind: kindFloat, f: v} }

// Undefined returns a NaN value of the given type.
func Undefined(typ MetricType) Value {
	return Value{typ: typ, kind: kindFloat, f: math.NaN()}
}

func (v Value) Type() MetricType { return v.typ }

// IsUndefined reports whether the value is NaN or has no type.
func (v Value) IsUndefined() bool {
	return v.typ == Unknown || (v.kind == kindFloat && math.IsNaN(v.f))
}

// Float64 converts the value to float64, the way exposition formats carry it.
func (v Value) Float64() float64 {
	switch {
	case v.typ == Unknown:
		return math.NaN()
	case v.kind == kindUint:
		return float64(v.u)
	case v.kind == kindInt:
		return float64(v.i)
	default:
		return v.f
	}
}

// Uint64 returns the counter integer, if the value holds one.
func (v Value) Uint64() (uint64, bool) {
	return v.u, v.typ == Counter && v.kind == kindUint
}

// Int64 returns the gauge integer, if the value holds one.
func (v Value) Int64() (int64, bool) {
	return v.i, v.typ == Gauge && v.kind == kindInt
}

func (v Value) String() string {
	switch {
	case v.typ == Unknown:
		return "NaN"
	case v.kind == kindUint:
		return strconv.FormatUint(v.u, 10)
	case v.kind == kindInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
}
