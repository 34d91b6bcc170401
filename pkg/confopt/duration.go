// SPDX-License-Identifier: GPL-3.0-or-later

package confopt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a non-negative time.Duration read from YAML either as a Go
// duration string ("1500ms", "2s") or as a number of seconds (1, 1.5).
type Duration time.Duration

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return d.Duration().String() }

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the Go duration string, which ParseDuration reads back.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// ParseDuration parses a Go duration string or a number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	var v time.Duration
	if d, err := time.ParseDuration(s); err == nil {
		v = d
	} else if secs, err := strconv.ParseFloat(s, 64); err == nil {
		v = time.Duration(secs * float64(time.Second))
	} else {
		return 0, fmt.Errorf("unparsable duration '%s'", s)
	}

	if v < 0 {
		return 0, fmt.Errorf("negative duration '%s'", s)
	}
	return v, nil
}
