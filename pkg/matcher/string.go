// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"bytes"
	"strings"
)

type stringMode uint8

const (
	matchContains stringMode = iota
	matchPrefix
	matchSuffix
	matchFull
)

// stringMatcher compares values with a literal.
type stringMatcher struct {
	s    string
	mode stringMode
}

// NewStringMatcher create a new matcher with string format.
// startWith and endWith anchor the literal at the start and at the end of the value.
func NewStringMatcher(s string, startWith, endWith bool) (Matcher, error) {
	switch {
	case startWith && endWith:
		return stringMatcher{s, matchFull}, nil
	case startWith:
		return stringMatcher{s, matchPrefix}, nil
	case endWith:
		return stringMatcher{s, matchSuffix}, nil
	default:
		return stringMatcher{s, matchContains}, nil
	}
}

func (m stringMatcher) Match(b []byte) bool {
	switch m.mode {
	case matchFull:
		return string(b) == m.s
	case matchPrefix:
		return bytes.HasPrefix(b, []byte(m.s))
	case matchSuffix:
		return bytes.HasSuffix(b, []byte(m.s))
	default:
		return bytes.Contains(b, []byte(m.s))
	}
}

func (m stringMatcher) MatchString(line string) bool {
	switch m.mode {
	case matchFull:
		return line == m.s
	case matchPrefix:
		return strings.HasPrefix(line, m.s)
	case matchSuffix:
		return strings.HasSuffix(line, m.s)
	default:
		return strings.Contains(line, m.s)
	}
}
