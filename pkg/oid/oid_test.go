// SPDX-License-Identifier: GPL-3.0-or-later

package oid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    OID
		wantErr bool
	}{
		"plain":          {input: "1.3.6.1.2.1", want: OID{1, 3, 6, 1, 2, 1}},
		"leading dot":    {input: ".1.3.6", want: OID{1, 3, 6}},
		"single element": {input: "0", want: OID{0}},
		"max uint32":     {input: "1.4294967295", want: OID{1, 4294967295}},
		"empty":          {input: "", wantErr: true},
		"dot only":       {input: ".", wantErr: true},
		"negative":       {input: "1.-3", wantErr: true},
		"letters":        {input: "1.3.a", wantErr: true},
		"empty element":  {input: "1..3", wantErr: true},
		"overflow":       {input: "1.4294967296", wantErr: true},
		"too long":       {input: strings.Repeat("1.", MaxLen) + "1", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			o, err := Parse(test.input)

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, o)
		})
	}
}

func TestOID_String(t *testing.T) {
	assert.Equal(t, "1.3.6.1.2.1.1.9.1.3", MustParse(".1.3.6.1.2.1.1.9.1.3").String())
	assert.Equal(t, "", OID(nil).String())
}

func TestCompare(t *testing.T) {
	tests := map[string]struct {
		a, b string
		want int
	}{
		"equal":                    {a: "1.3.6", b: "1.3.6", want: 0},
		"smaller element":          {a: "1.3.5", b: "1.3.6", want: -1},
		"greater element":          {a: "1.3.10", b: "1.3.9", want: 1},
		"proper prefix is smaller": {a: "1.3", b: "1.3.6", want: -1},
		"longer is greater":        {a: "1.3.6.1", b: "1.3.6", want: 1},
		"element beats length":     {a: "1.4", b: "1.3.6.1", want: 1},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, b := MustParse(test.a), MustParse(test.b)

			assert.Equal(t, test.want, Compare(a, b))
			assert.Equal(t, -test.want, Compare(b, a))
		})
	}
}

func TestCompare_totalOrder(t *testing.T) {
	oids := []OID{
		MustParse("1"), MustParse("1.3"), MustParse("1.3.6"), MustParse("1.3.6.1"),
		MustParse("1.3.7"), MustParse("1.4"), MustParse("2"), MustParse("2.0.0"),
	}

	for i, a := range oids {
		assert.Equal(t, 0, Compare(a, a))
		for j, b := range oids {
			switch {
			case i < j:
				assert.Equalf(t, -1, Compare(a, b), "%s < %s", a, b)
			case i > j:
				assert.Equalf(t, 1, Compare(a, b), "%s > %s", a, b)
			}
			for _, c := range oids {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Equalf(t, -1, Compare(a, c), "%s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func TestOID_IsStrictPrefixOf(t *testing.T) {
	root := MustParse("1.3.6.1.2.1.2.2.1.2")

	assert.True(t, root.IsStrictPrefixOf(MustParse("1.3.6.1.2.1.2.2.1.2.1")))
	assert.True(t, root.IsStrictPrefixOf(MustParse("1.3.6.1.2.1.2.2.1.2.1.5")))
	assert.False(t, root.IsStrictPrefixOf(root))
	assert.False(t, root.IsStrictPrefixOf(MustParse("1.3.6.1.2.1.2.2.1.3.1")))
	assert.False(t, root.IsStrictPrefixOf(MustParse("1.3.6.1.2.1.2.2.1")))
}

func TestSuffix(t *testing.T) {
	root := MustParse("1.3.6.1.2.1.1.9.1.3")

	suffix, err := Suffix(root, MustParse("1.3.6.1.2.1.1.9.1.3.7.1"))
	require.NoError(t, err)
	assert.Equal(t, OID{7, 1}, suffix)

	suffix, err = Suffix(root, root)
	require.NoError(t, err)
	assert.Empty(t, suffix)

	_, err = Suffix(root, MustParse("1.3.6.1.2.1.1.9.1.4.1"))
	assert.ErrorIs(t, err, ErrNotInSubtree)

	_, err = Suffix(root, MustParse("1.3.6"))
	assert.ErrorIs(t, err, ErrNotInSubtree)
}

func TestSuffix_roundTrip(t *testing.T) {
	tests := []struct{ root, oid string }{
		{"1.3.6.1.2.1.2.2.1.2", "1.3.6.1.2.1.2.2.1.2.1"},
		{"1.3.6.1.2.1.2.2.1.2", "1.3.6.1.2.1.2.2.1.2.10.20.30"},
		{"1.3", "1.3.6.1.4.1.2021.10.1.3.1"},
		{"1.3.6", "1.3.6"},
	}

	for _, test := range tests {
		root, o := MustParse(test.root), MustParse(test.oid)

		suffix, err := Suffix(root, o)
		require.NoError(t, err)

		assert.Equal(t, o, root.Append(suffix))
	}
}

func TestOID_Append_doesNotAlias(t *testing.T) {
	root := make(OID, 3, 10)
	copy(root, OID{1, 3, 6})

	a := root.Append(OID{1})
	b := root.Append(OID{2})

	assert.Equal(t, OID{1, 3, 6, 1}, a)
	assert.Equal(t, OID{1, 3, 6, 2}, b)
}
