// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosnmp/gosnmp"

	"github.com/snmpcollect/snmpcollect/logger"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
)

const defaultComplaintInterval = 10 * time.Minute

func New() *Collector {
	return &Collector{
		Config:        DefaultConfig(),
		newSnmpClient: gosnmp.NewHandler,
		complaint:     newComplaint(defaultComplaintInterval),
		now:           time.Now,
		newCycleID:    uuid.NewString,
	}
}

// dataItem is one definition as a host collects it, with the host and data labels merged.
type dataItem struct {
	def    *Definition
	labels metrix.Labels
}

// Collector polls one host.
type Collector struct {
	*logger.Logger
	Config

	newSnmpClient func() gosnmp.Handler
	sess          *session

	items    []*dataItem
	bulkSize int

	complaint  *complaint
	now        func() time.Time
	newCycleID func() string
}

func (c *Collector) Configuration() any {
	return c.Config
}

// Init validates the host configuration and selects the data definitions it collects.
// The session is opened lazily by the first poll.
func (c *Collector) Init(defs Definitions) error {
	if c.Logger == nil {
		c.Logger = logger.New().With(slog.String("host", c.Name))
	}

	if err := c.validateConfig(); err != nil {
		return fmt.Errorf("config validation failed: %v", err)
	}

	items, err := c.initDataItems(defs)
	if err != nil {
		return err
	}
	c.items = items

	c.sess = &session{newClient: c.initSNMPClient}

	return nil
}

// Collect runs one poll and returns the collected families. Only transport errors
// and cancellation abort the poll; a failing data definition is logged and skipped.
func (c *Collector) Collect(ctx context.Context) ([]*metrix.MetricFamily, error) {
	ts := c.now()
	families := make([]*metrix.MetricFamily, 0, len(c.items))

	for _, item := range c.items {
		var metrics []metrix.Metric
		var err error

		if item.def.Table {
			metrics, err = c.collectTable(ctx, item)
		} else {
			metrics, err = c.collectValue(ctx, item)
		}

		if err != nil {
			var terr *TransportError
			if errors.As(err, &terr) {
				c.sess.invalidate()
				return nil, err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.Warningf("data '%s': %v", item.def.Name, err)
			continue
		}

		if len(metrics) == 0 {
			continue
		}
		families = append(families, c.newFamily(item.def, metrics, ts))
	}

	return families, nil
}

// Poll collects the host and hands the result to d. A failed poll dispatches nothing.
func (c *Collector) Poll(ctx context.Context, d Dispatcher) error {
	cycle := c.newCycleID()
	start := c.now()

	families, err := c.Collect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.complaint.report(c.Logger, err)
		}
		return err
	}
	c.complaint.release(c.Logger)

	c.Debugf("cycle %s: collected %d families in %s", cycle, len(families), c.now().Sub(start))

	d.Dispatch(Batch{
		CycleID:  cycle,
		Host:     c.Name,
		Time:     start,
		Families: families,
	})

	return nil
}

func (c *Collector) Cleanup() {
	if c.sess != nil {
		c.sess.invalidate()
	}
}
