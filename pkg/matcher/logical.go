// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

type (
	constMatcher bool
	allMatcher   []Matcher
	anyMatcher   []Matcher
	notMatcher   struct{ m Matcher }
)

// TRUE returns a matcher which always returns true
func TRUE() Matcher { return constMatcher(true) }

// FALSE returns a matcher which always returns false
func FALSE() Matcher { return constMatcher(false) }

// Not returns a matcher which negates the sub-matcher's result
func Not(m Matcher) Matcher {
	switch v := m.(type) {
	case constMatcher:
		return !v
	case notMatcher:
		return v.m
	default:
		return notMatcher{m}
	}
}

// And returns a matcher which returns true only if all of its sub-matchers return true.
// Constant sub-matchers are folded and nested And matchers are flattened.
func And(lhs, rhs Matcher, others ...Matcher) Matcher {
	var ms allMatcher
	for _, m := range append([]Matcher{lhs, rhs}, others...) {
		switch v := m.(type) {
		case constMatcher:
			if !v {
				return FALSE()
			}
		case allMatcher:
			ms = append(ms, v...)
		default:
			ms = append(ms, m)
		}
	}

	switch len(ms) {
	case 0:
		return TRUE()
	case 1:
		return ms[0]
	default:
		return ms
	}
}

// Or returns a matcher which returns true if any of its sub-matchers returns true.
// Constant sub-matchers are folded and nested Or matchers are flattened.
func Or(lhs, rhs Matcher, others ...Matcher) Matcher {
	var ms anyMatcher
	for _, m := range append([]Matcher{lhs, rhs}, others...) {
		switch v := m.(type) {
		case constMatcher:
			if v {
				return TRUE()
			}
		case anyMatcher:
			ms = append(ms, v...)
		default:
			ms = append(ms, m)
		}
	}

	switch len(ms) {
	case 0:
		return FALSE()
	case 1:
		return ms[0]
	default:
		return ms
	}
}

func (m constMatcher) Match([]byte) bool       { return bool(m) }
func (m constMatcher) MatchString(string) bool { return bool(m) }

func (m allMatcher) Match(b []byte) bool {
	for _, v := range m {
		if !v.Match(b) {
			return false
		}
	}
	return true
}

func (m allMatcher) MatchString(s string) bool {
	for _, v := range m {
		if !v.MatchString(s) {
			return false
		}
	}
	return true
}

func (m anyMatcher) Match(b []byte) bool {
	for _, v := range m {
		if v.Match(b) {
			return true
		}
	}
	return false
}

func (m anyMatcher) MatchString(s string) bool {
	for _, v := range m {
		if v.MatchString(s) {
			return true
		}
	}
	return false
}

func (m notMatcher) Match(b []byte) bool       { return !m.m.Match(b) }
func (m notMatcher) MatchString(s string) bool { return !m.m.MatchString(s) }
