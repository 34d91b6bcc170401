// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"errors"
	"fmt"

	"github.com/gosnmp/gosnmp"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/snmputils"
)

func (c *Collector) validateConfig() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("'name' is required"))
	}
	if c.Address == "" {
		errs = append(errs, errors.New("'address' is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("invalid retries %d", c.Retries))
	}
	if c.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid max_request_size %d", c.MaxRequestSize))
	}
	if c.BulkSize < 0 {
		errs = append(errs, fmt.Errorf("invalid bulk_size %d", c.BulkSize))
	}

	ver, err := snmputils.ParseSNMPVersion(c.Version)
	if err != nil {
		errs = append(errs, err)
	}

	switch ver {
	case gosnmp.Version1, gosnmp.Version2c:
		if c.Community == "" {
			errs = append(errs, errors.New("'community' is required for SNMP versions 1 and 2c"))
		}
	case gosnmp.Version3:
		if c.User.Name == "" {
			errs = append(errs, errors.New("'user.name' is required for SNMPv3"))
		}
		if _, err := snmputils.ParseSNMPv3SecurityLevel(c.User.SecurityLevel); err != nil {
			errs = append(errs, err)
		}
		if _, err := snmputils.ParseSNMPv3AuthProtocol(c.User.AuthProto); err != nil {
			errs = append(errs, err)
		}
		if _, err := snmputils.ParseSNMPv3PrivProtocol(c.User.PrivProto); err != nil {
			errs = append(errs, err)
		}
	}

	c.bulkSize = c.BulkSize
	if c.bulkSize > 0 && ver == gosnmp.Version1 {
		c.Warning("'bulk_size' is ignored with SNMP version 1, GETBULK needs version 2c or 3")
		c.bulkSize = 0
	}

	return errors.Join(errs...)
}

func (c *Collector) initSNMPClient() (gosnmp.Handler, error) {
	client := c.newSnmpClient()

	client.SetTarget(c.Address)
	client.SetPort(uint16(c.Port))
	client.SetRetries(c.Retries)
	client.SetTimeout(c.Timeout.Duration())
	client.SetMaxOids(c.MaxRequestSize)

	ver, err := snmputils.ParseSNMPVersion(c.Version)
	if err != nil {
		return nil, err
	}

	switch ver {
	case gosnmp.Version1, gosnmp.Version2c:
		client.SetCommunity(c.Community)
		client.SetVersion(ver)
	case gosnmp.Version3:
		level, err := snmputils.ParseSNMPv3SecurityLevel(c.User.SecurityLevel)
		if err != nil {
			return nil, err
		}
		auth, err := snmputils.ParseSNMPv3AuthProtocol(c.User.AuthProto)
		if err != nil {
			return nil, err
		}
		priv, err := snmputils.ParseSNMPv3PrivProtocol(c.User.PrivProto)
		if err != nil {
			return nil, err
		}

		client.SetVersion(gosnmp.Version3)
		client.SetSecurityModel(gosnmp.UserSecurityModel)
		client.SetMsgFlags(level)
		client.SetContextName(c.Context)
		client.SetSecurityParameters(&gosnmp.UsmSecurityParameters{
			UserName:                 c.User.Name,
			AuthenticationProtocol:   auth,
			AuthenticationPassphrase: c.User.AuthKey,
			PrivacyProtocol:          priv,
			PrivacyPassphrase:        c.User.PrivKey,
		})
	}

	c.Debug(snmputils.SnmpClientConnInfo(client))

	return client, nil
}

// initDataItems resolves the collect list. Unknown names are warned about and skipped.
func (c *Collector) initDataItems(defs Definitions) ([]*dataItem, error) {
	hostLabels := metrix.LabelsFromMap(c.Labels)

	var items []*dataItem
	for _, name := range c.CollectData {
		def, ok := defs.Lookup(name)
		if !ok {
			c.Warningf("collect: no data definition named '%s'", name)
			continue
		}
		for _, w := range def.Warnings {
			c.Warningf("data '%s': %s", def.Name, w)
		}
		if n := def.columns(); n > c.MaxRequestSize {
			c.Warningf("data '%s': needs %d OIDs per request, more than max_request_size %d, skipping",
				def.Name, n, c.MaxRequestSize)
			continue
		}

		labels := hostLabels.Clone()
		labels.Merge(def.Labels)
		items = append(items, &dataItem{def: def, labels: labels})
	}

	if len(items) == 0 {
		return nil, errors.New("nothing to collect: 'collect' names no usable data definition")
	}
	return items, nil
}
