// SPDX-License-Identifier: GPL-3.0-or-later

// Package oid implements SNMP object identifiers and the ordering and subtree
// primitives needed to walk tables.
package oid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLen is the maximum number of sub-identifiers in an OID.
const MaxLen = 128

var (
	ErrNotInSubtree = errors.New("oid is not in subtree")
	ErrTooLong      = fmt.Errorf("oid has more than %d sub-identifiers", MaxLen)
)

// OID is an ordered sequence of sub-identifiers.
type OID []uint32

// Parse parses a dotted OID. A leading dot is accepted.
func Parse(s string) (OID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), ".")
	if s == "" {
		return nil, errors.New("empty oid")
	}

	parts := strings.Split(s, ".")
	if len(parts) > MaxLen {
		return nil, ErrTooLong
	}

	o := make(OID, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid oid '%s': bad sub-identifier '%s'", s, p)
		}
		o = append(o, uint32(v))
	}
	return o, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) OID {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String returns the dotted form without a leading dot.
func (o OID) String() string {
	var sb strings.Builder
	for i, v := range o {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// Compare orders OIDs element by element; on a common prefix the shorter one is smaller.
func Compare(a, b OID) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func (o OID) Equal(other OID) bool { return Compare(o, other) == 0 }

// HasPrefix reports whether root is a prefix of o. An OID is a prefix of itself.
func (o OID) HasPrefix(root OID) bool {
	if len(root) > len(o) {
		return false
	}
	for i, v := range root {
		if o[i] != v {
			return false
		}
	}
	return true
}

// IsStrictPrefixOf reports whether o lies strictly below root in the tree.
func (o OID) IsStrictPrefixOf(other OID) bool {
	return len(other) > len(o) && other.HasPrefix(o)
}

// Suffix returns the sub-identifiers of o that follow root.
func Suffix(root, o OID) (OID, error) {
	if !o.HasPrefix(root) {
		return nil, fmt.Errorf("%w: %s is not below %s", ErrNotInSubtree, o, root)
	}
	suffix := make(OID, len(o)-len(root))
	copy(suffix, o[len(root):])
	return suffix, nil
}

// Append returns a new OID made of o followed by suffix.
func (o OID) Append(suffix OID) OID {
	out := make(OID, 0, len(o)+len(suffix))
	out = append(out, o...)
	return append(out, suffix...)
}
