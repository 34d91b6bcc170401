// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gohugoio/hashstructure"
	"gopkg.in/yaml.v2"

	"github.com/snmpcollect/snmpcollect/plugin/snmp.d/collector/snmp"
)

const defaultUpdateEvery = 10

type (
	// fileConfig is the main configuration file.
	fileConfig struct {
		UpdateEvery int               `yaml:"update_every" json:"update_every"`
		Listen      string            `yaml:"listen" json:"listen"`
		Include     []string          `yaml:"include,omitempty" json:"include"`
		Data        []snmp.DataConfig `yaml:"data" json:"data"`
		Hosts       []snmp.Config     `yaml:"hosts" json:"hosts"`
	}
	// includeFile is the shape of a file pulled in by 'include'.
	includeFile struct {
		Data  []snmp.DataConfig `yaml:"data"`
		Hosts []snmp.Config     `yaml:"hosts"`
	}

	// Settings is a loaded and validated configuration.
	Settings struct {
		UpdateEvery int
		Listen      string
		Hosts       []HostEntry
		Defs        snmp.Definitions
		// Files are every file the settings were read from, for the watcher.
		Files []string
	}
	HostEntry struct {
		Config      snmp.Config
		UpdateEvery int
		// Hash covers everything the host's job depends on, so an unchanged
		// hash lets a reload keep the job running.
		Hash uint64
	}
)

func (c *fileConfig) UnmarshalYAML(unmarshal func(any) error) error {
	type plain fileConfig
	v := plain{UpdateEvery: defaultUpdateEvery}
	if err := unmarshal(&v); err != nil {
		return err
	}
	*c = fileConfig(v)
	return nil
}

// LoadConfig reads the main file and its includes and validates the result.
func LoadConfig(path string) (*Settings, error) {
	var cfg fileConfig
	if err := readYAML(path, &cfg); err != nil {
		return nil, err
	}

	files := []string{path}
	dir := filepath.Dir(path)

	for _, pattern := range cfg.Include {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("include '%s': %v", pattern, err)
		}
		for _, name := range matches {
			var inc includeFile
			if err := readYAML(name, &inc); err != nil {
				return nil, err
			}
			cfg.Data = append(cfg.Data, inc.Data...)
			cfg.Hosts = append(cfg.Hosts, inc.Hosts...)
			files = append(files, name)
		}
	}

	s, err := newSettings(cfg)
	if err != nil {
		return nil, err
	}
	s.Files = files
	return s, nil
}

func readYAML(path string, v any) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("parse '%s': %v", path, err)
	}
	return nil
}

func newSettings(cfg fileConfig) (*Settings, error) {
	var errs []error

	if cfg.UpdateEvery <= 0 {
		errs = append(errs, fmt.Errorf("invalid update_every %d", cfg.UpdateEvery))
	}

	defs, err := snmp.NewDefinitions(cfg.Data)
	if err != nil {
		errs = append(errs, err)
	}

	dataByName := make(map[string]snmp.DataConfig, len(cfg.Data))
	for _, d := range cfg.Data {
		dataByName[strings.ToLower(d.Name)] = d
	}

	s := &Settings{
		UpdateEvery: cfg.UpdateEvery,
		Listen:      cfg.Listen,
		Defs:        defs,
	}

	seen := make(map[string]bool)
	for _, h := range cfg.Hosts {
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("host '%s': 'name' is required", h.Address))
			continue
		}
		if seen[h.Name] {
			errs = append(errs, fmt.Errorf("host '%s': duplicate name", h.Name))
			continue
		}
		seen[h.Name] = true

		if h.UpdateEvery < 0 {
			errs = append(errs, fmt.Errorf("host '%s': invalid update_every %d", h.Name, h.UpdateEvery))
			continue
		}

		entry := HostEntry{Config: h, UpdateEvery: h.UpdateEvery}
		if entry.UpdateEvery == 0 {
			entry.UpdateEvery = cfg.UpdateEvery
		}
		entry.Hash = hostHash(entry, dataByName)
		s.Hosts = append(s.Hosts, entry)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

func hostHash(entry HostEntry, dataByName map[string]snmp.DataConfig) uint64 {
	data := make([]snmp.DataConfig, 0, len(entry.Config.CollectData))
	for _, name := range entry.Config.CollectData {
		if d, ok := dataByName[strings.ToLower(name)]; ok {
			data = append(data, d)
		}
	}

	v := struct {
		Host        snmp.Config
		UpdateEvery int
		Data        []snmp.DataConfig
	}{entry.Config, entry.UpdateEvery, data}

	hash, _ := hashstructure.Hash(v, nil)
	return hash
}
