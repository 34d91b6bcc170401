// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Matcher is an interface that wraps MatchString method.
	Matcher interface {
		// Match performs match against given []byte
		Match(b []byte) bool
		// MatchString performs match against given string
		MatchString(string) bool
	}

	// Format matcher format
	Format string
)

const (
	// FmtString is a string match format.
	FmtString Format = "string"
	// FmtGlob is a glob match format.
	FmtGlob Format = "glob"
	// FmtRegExp is a regex match format.
	FmtRegExp Format = "regexp"

	separator = ":"
)

var errNotShortSyntax = errors.New("not short syntax")

// Must is a helper that wraps a call to a function returning (Matcher, error) and panics if the error is non-nil.
func Must(m Matcher, err error) Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

// New creates a matcher of the given format.
func New(format Format, expr string) (Matcher, error) {
	switch format {
	case FmtString:
		return NewStringMatcher(expr, true, true)
	case FmtGlob:
		return NewGlobMatcher(expr)
	case FmtRegExp:
		return NewRegExpMatcher(expr)
	default:
		return nil, fmt.Errorf("unsupported matcher format: '%s'", format)
	}
}

// Parse parses line and returns appropriate matcher based on the prefix.
//
// Short Syntax
//
//	<line>      ::= [ <not> ] <format> <space> <expr>
//	<format>    ::= [ '=', '~', '*' ]
//	'=' means string match
//	'~' means regexp match
//	'*' means glob match
//
// Long Syntax
//
//	<line>      ::= [ <not> ] <format> <separator> <expr>
//	<format>    ::= [ 'string' | 'glob' | 'regexp' ]
//	<separator> ::= ':'
//
// <not> is '!' and negates the matcher. Anything else is an exact string.
func Parse(line string) (Matcher, error) {
	if m, err := parseShortFormat(line); err == nil || !errors.Is(err, errNotShortSyntax) {
		return m, err
	}
	if m, err := parseLongSyntax(line); m != nil || err != nil {
		return m, err
	}
	return NewStringMatcher(line, true, true)
}

func parseShortFormat(line string) (Matcher, error) {
	neg := strings.HasPrefix(line, "!")
	if neg {
		line = line[1:]
	}
	if len(line) < 2 || line[1] != ' ' {
		return nil, errNotShortSyntax
	}

	var format Format
	switch line[0] {
	case '=':
		format = FmtString
	case '~':
		format = FmtRegExp
	case '*':
		format = FmtGlob
	default:
		return nil, errNotShortSyntax
	}

	m, err := New(format, line[2:])
	if err != nil {
		return nil, err
	}
	if neg {
		m = Not(m)
	}
	return m, nil
}

func parseLongSyntax(line string) (Matcher, error) {
	neg := strings.HasPrefix(line, "!")
	if neg {
		line = line[1:]
	}

	idx := strings.Index(line, separator)
	if idx < 0 {
		return nil, nil
	}

	format := Format(line[:idx])
	switch format {
	case FmtString, FmtGlob, FmtRegExp:
	default:
		return nil, nil
	}

	m, err := New(format, line[idx+len(separator):])
	if err != nil {
		return nil, err
	}
	if neg {
		m = Not(m)
	}
	return m, nil
}
