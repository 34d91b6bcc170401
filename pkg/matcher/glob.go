// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"regexp"
	"strings"
)

// globMatcher keeps the original pattern for equality checks and a compiled form for matching.
type globMatcher struct {
	pattern string
	re      *regexp.Regexp
}

var errBadGlob = errors.New("syntax error in glob pattern")

// NewGlobMatcher creates a glob matcher. Patterns without wildcards become string matchers.
func NewGlobMatcher(expr string) (Matcher, error) {
	expr = strings.TrimSpace(expr)
	if !strings.ContainsAny(expr, `*?[\`) {
		return stringMatcher{expr, matchFull}, nil
	}

	src, literal, err := globToRegexp(expr)
	if err != nil {
		return nil, err
	}
	if literal != "" || src == "" {
		return stringMatcher{literal, matchFull}, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, errBadGlob
	}
	return globMatcher{pattern: expr, re: re}, nil
}

func (m globMatcher) Match(b []byte) bool          { return m.re.Match(b) }
func (m globMatcher) MatchString(line string) bool { return m.re.MatchString(line) }

// globToRegexp translates a glob into an anchored regexp. If the glob contains no
// wildcard after unescaping, the unescaped literal is returned instead.
func globToRegexp(glob string) (src, literal string, err error) {
	var (
		re       strings.Builder
		lit      strings.Builder
		wildcard bool
	)
	re.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch ch := glob[i]; ch {
		case '\\':
			if i+1 == len(glob) {
				return "", "", errBadGlob
			}
			i++
			re.WriteString(regexp.QuoteMeta(string(glob[i])))
			lit.WriteByte(glob[i])
		case '*':
			wildcard = true
			re.WriteString(".*")
		case '?':
			wildcard = true
			re.WriteString(".")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end <= 0 {
				return "", "", errBadGlob
			}
			class := glob[i+1 : i+1+end]
			if strings.HasPrefix(class, "^") || strings.HasPrefix(class, "!") {
				if len(class) == 1 {
					return "", "", errBadGlob
				}
				class = "^" + class[1:]
			}
			wildcard = true
			re.WriteString("[" + class + "]")
			i += end + 1
		default:
			re.WriteString(regexp.QuoteMeta(string(ch)))
			lit.WriteByte(ch)
		}
	}
	re.WriteString("$")

	if !wildcard {
		return "", lit.String(), nil
	}
	return re.String(), "", nil
}
