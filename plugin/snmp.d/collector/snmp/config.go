// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"time"

	"github.com/snmpcollect/snmpcollect/pkg/confopt"
	"github.com/snmpcollect/snmpcollect/pkg/matcher"
)

type (
	// Config describes one polled host.
	Config struct {
		Name    string `yaml:"name" json:"name"`
		Address string `yaml:"address" json:"address"`
		Port    int    `yaml:"port,omitempty" json:"port"`

		Version   string     `yaml:"version,omitempty" json:"version"`
		Community string     `yaml:"community,omitempty" json:"community"`
		User      UserConfig `yaml:"user,omitempty" json:"user"`
		Context   string     `yaml:"context,omitempty" json:"context"`

		Timeout        confopt.Duration `yaml:"timeout,omitempty" json:"timeout"`
		Retries        int              `yaml:"retries" json:"retries"`
		BulkSize       int              `yaml:"bulk_size,omitempty" json:"bulk_size"`
		MaxRequestSize int              `yaml:"max_request_size,omitempty" json:"max_request_size"`
		UpdateEvery    int              `yaml:"update_every,omitempty" json:"update_every"`

		MetricPrefix string            `yaml:"metric_prefix,omitempty" json:"metric_prefix"`
		Labels       map[string]string `yaml:"labels,omitempty" json:"labels"`
		CollectData  []string          `yaml:"collect" json:"collect"`
	}
	UserConfig struct {
		Name          string `yaml:"name,omitempty" json:"name"`
		SecurityLevel string `yaml:"level,omitempty" json:"level"`
		AuthProto     string `yaml:"auth_proto,omitempty" json:"auth_proto"`
		AuthKey       string `yaml:"auth_key,omitempty" json:"auth_key"`
		PrivProto     string `yaml:"priv_proto,omitempty" json:"priv_proto"`
		PrivKey       string `yaml:"priv_key,omitempty" json:"priv_key"`
	}

	// DataConfig describes one metric read from a host, either a single value or a table.
	DataConfig struct {
		Name   string `yaml:"name" json:"name"`
		Metric string `yaml:"metric" json:"metric"`
		Help   string `yaml:"help,omitempty" json:"help"`

		Table bool   `yaml:"table,omitempty" json:"table"`
		Count bool   `yaml:"count,omitempty" json:"count"`
		Type  string `yaml:"type,omitempty" json:"type"`

		Value string  `yaml:"value" json:"value"`
		Scale float64 `yaml:"scale" json:"scale"`
		Shift float64 `yaml:"shift,omitempty" json:"shift"`

		Labels     map[string]string `yaml:"labels,omitempty" json:"labels"`
		LabelsFrom map[string]string `yaml:"labels_from,omitempty" json:"labels_from"`

		FilterOID string             `yaml:"filter_oid,omitempty" json:"filter_oid"`
		Filter    matcher.SimpleExpr `yaml:"filter,omitempty" json:"filter"`
	}
)

const (
	defaultPort           = 161
	defaultVersion        = "2"
	defaultCommunity      = "public"
	defaultTimeout        = time.Second
	defaultRetries        = 5
	defaultMaxRequestSize = 60
)

// DefaultConfig returns a host configuration with every default applied.
func DefaultConfig() Config {
	return Config{
		Port:           defaultPort,
		Version:        defaultVersion,
		Community:      defaultCommunity,
		Timeout:        confopt.Duration(defaultTimeout),
		Retries:        defaultRetries,
		MaxRequestSize: defaultMaxRequestSize,
		User: UserConfig{
			SecurityLevel: "authPriv",
			AuthProto:     "sha",
			PrivProto:     "aes",
		},
	}
}

func (c *Config) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Config
	v := plain(DefaultConfig())
	if err := unmarshal(&v); err != nil {
		return err
	}
	*c = Config(v)
	return nil
}

func (d *DataConfig) UnmarshalYAML(unmarshal func(any) error) error {
	type plain DataConfig
	v := plain{Scale: 1, Type: "gauge"}
	if err := unmarshal(&v); err != nil {
		return err
	}
	*d = DataConfig(v)
	return nil
}
