// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/snmpcollect/snmpcollect/logger"
)

// complaint rate-limits the error log of a host that keeps failing: the first
// failure is logged, then at most one per interval until the host recovers.
type complaint struct {
	interval time.Duration
	failures int
	limiter  *rate.Sometimes
}

func newComplaint(interval time.Duration) *complaint {
	return &complaint{interval: interval}
}

func (c *complaint) report(l *logger.Logger, err error) {
	if c.failures == 0 {
		c.limiter = &rate.Sometimes{First: 1, Interval: c.interval}
	}
	c.failures++

	failures := c.failures
	c.limiter.Do(func() {
		if failures == 1 {
			l.Errorf("poll failed: %v", err)
			return
		}
		l.Errorf("poll failed (%d times in a row): %v", failures, err)
	})
}

func (c *complaint) release(l *logger.Logger) {
	if c.failures == 0 {
		return
	}
	l.Infof("poll succeeded after %d failures", c.failures)
	c.failures = 0
	c.limiter = nil
}
