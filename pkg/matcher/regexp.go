// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"regexp"
	"strings"
)

// NewRegExpMatcher creates a regexp matcher. A pattern that is a literal once
// its '^' and '$' anchors are removed becomes a plain string matcher.
func NewRegExpMatcher(expr string) (Matcher, error) {
	switch expr {
	case "", "^", "$":
		return TRUE(), nil
	case "^$", "$^":
		return NewStringMatcher("", true, true)
	}

	body := expr
	startWith := strings.HasPrefix(body, "^")
	if startWith {
		body = body[1:]
	}
	endWith := strings.HasSuffix(body, "$") && !escapedAt(body, len(body)-1)
	if endWith {
		body = body[:len(body)-1]
	}

	if re, err := regexp.Compile(body); err == nil && body != "" {
		if prefix, complete := re.LiteralPrefix(); complete {
			return NewStringMatcher(prefix, startWith, endWith)
		}
	}

	return regexp.Compile(expr)
}

// escapedAt reports whether s[i] is preceded by an odd number of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
