// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
)

type (
	Expr interface {
		Parse() (Matcher, error)
	}

	// SimpleExpr is an include/exclude filter: a value passes if it matches any
	// of Includes (or Includes is empty) and none of Excludes.
	// Every item is a matcher line, see Parse.
	SimpleExpr struct {
		Includes []string `yaml:"includes,omitempty" json:"includes"`
		Excludes []string `yaml:"excludes,omitempty" json:"excludes"`
	}
)

var ErrEmptyExpr = errors.New("empty expression")

// Empty returns true if both Includes and Excludes are empty.
func (s *SimpleExpr) Empty() bool {
	return len(s.Includes) == 0 && len(s.Excludes) == 0
}

// Parse parses the given matchers in Includes and Excludes
func (s *SimpleExpr) Parse() (Matcher, error) {
	if s.Empty() {
		return nil, ErrEmptyExpr
	}

	includes := TRUE()
	if len(s.Includes) > 0 {
		m, err := parseAny(s.Includes)
		if err != nil {
			return nil, fmt.Errorf("includes: %v", err)
		}
		includes = m
	}
	if len(s.Excludes) == 0 {
		return includes, nil
	}

	excludes, err := parseAny(s.Excludes)
	if err != nil {
		return nil, fmt.Errorf("excludes: %v", err)
	}
	return And(includes, Not(excludes)), nil
}

// parseAny returns a matcher that matches if any of lines does.
func parseAny(lines []string) (Matcher, error) {
	ms := make([]Matcher, 0, len(lines))
	for _, line := range lines {
		m, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("parse matcher '%s': %v", line, err)
		}
		ms = append(ms, m)
	}
	if len(ms) == 1 {
		return ms[0], nil
	}
	return Or(ms[0], ms[1], ms[2:]...), nil
}
