// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/snmpcollect/snmpcollect/pkg/matcher"
	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/oid"
)

type (
	// Definition is a validated DataConfig. It is read-only once built and may be
	// shared by every host that collects it.
	Definition struct {
		Name   string
		Metric string
		Help   string

		Table     bool
		CountOnly bool
		Type      metrix.MetricType

		ValueOID   oid.OID
		Labels     metrix.Labels
		LabelsFrom []LabelSource

		FilterOID oid.OID
		Filter    matcher.Matcher

		Scale float64
		Shift float64

		// Warnings are non-fatal configuration problems found while building.
		Warnings []string
	}
	LabelSource struct {
		Name string
		OID  oid.OID
	}

	// Definitions indexes definitions by case-insensitive name.
	Definitions map[string]*Definition
)

// NewDefinition validates cfg and compiles its OIDs and filter.
func NewDefinition(cfg DataConfig) (*Definition, error) {
	var errs []error

	def := &Definition{
		Name:      cfg.Name,
		Metric:    cfg.Metric,
		Help:      cfg.Help,
		Table:     cfg.Table,
		CountOnly: cfg.Count,
		Scale:     cfg.Scale,
		Shift:     cfg.Shift,
		Labels:    metrix.LabelsFromMap(cfg.Labels),
	}

	if cfg.Name == "" {
		errs = append(errs, errors.New("'name' is required"))
	}
	if cfg.Metric == "" {
		errs = append(errs, errors.New("'metric' is required"))
	}

	typ, ok := metrix.ParseMetricType(cfg.Type)
	if !ok {
		errs = append(errs, fmt.Errorf("'type' must be 'counter' or 'gauge', got '%s'", cfg.Type))
	}
	def.Type = typ

	if cfg.Count && !cfg.Table {
		errs = append(errs, errors.New("'count' requires 'table'"))
	}

	if cfg.Value == "" {
		errs = append(errs, errors.New("'value' is required"))
	} else if o, err := oid.Parse(cfg.Value); err != nil {
		errs = append(errs, fmt.Errorf("'value': %v", err))
	} else {
		def.ValueOID = o
	}

	names := make([]string, 0, len(cfg.LabelsFrom))
	for name := range cfg.LabelsFrom {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" {
			errs = append(errs, errors.New("'labels_from' has an empty label name"))
			continue
		}
		o, err := oid.Parse(cfg.LabelsFrom[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("'labels_from' %s: %v", name, err))
			continue
		}
		def.LabelsFrom = append(def.LabelsFrom, LabelSource{Name: name, OID: o})
	}

	switch {
	case cfg.FilterOID == "" && !cfg.Filter.Empty():
		errs = append(errs, errors.New("'filter' requires 'filter_oid'"))
	case cfg.FilterOID != "" && !cfg.Table:
		def.Warnings = append(def.Warnings, "'filter_oid' is ignored for non-table data")
	case cfg.FilterOID != "":
		o, err := oid.Parse(cfg.FilterOID)
		if err != nil {
			errs = append(errs, fmt.Errorf("'filter_oid': %v", err))
			break
		}
		def.FilterOID = o
		def.Filter = matcher.TRUE()
		if !cfg.Filter.Empty() {
			m, err := cfg.Filter.Parse()
			if err != nil {
				errs = append(errs, fmt.Errorf("'filter': %v", err))
				break
			}
			def.Filter = matcher.WithCache(m)
		}
	}

	if cfg.Table && !cfg.Count && len(cfg.LabelsFrom) == 0 {
		def.Warnings = append(def.Warnings, "table rows without 'labels_from' share one label set, only the first row is exported")
	}

	if typ == metrix.Counter && (cfg.Scale != 1 || cfg.Shift != 0) {
		def.Warnings = append(def.Warnings, "'scale' and 'shift' are ignored for counters")
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("data '%s': %w", cfg.Name, err)
	}
	return def, nil
}

// NewDefinitions builds every definition and rejects duplicate names.
func NewDefinitions(cfgs []DataConfig) (Definitions, error) {
	var errs []error
	defs := make(Definitions, len(cfgs))

	for _, cfg := range cfgs {
		def, err := NewDefinition(cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		key := strings.ToLower(def.Name)
		if _, ok := defs[key]; ok {
			errs = append(errs, fmt.Errorf("data '%s': duplicate name", def.Name))
			continue
		}
		defs[key] = def
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return defs, nil
}

// Lookup finds a definition by name, ignoring case.
func (d Definitions) Lookup(name string) (*Definition, bool) {
	def, ok := d[strings.ToLower(name)]
	return def, ok
}

// columns returns the number of OIDs one request of this definition carries.
func (d *Definition) columns() int {
	n := 1 + len(d.LabelsFrom)
	if d.Table && d.FilterOID != nil {
		n++
	}
	return n
}
