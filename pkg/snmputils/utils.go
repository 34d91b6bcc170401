// SPDX-License-Identifier: GPL-3.0-or-later

package snmputils

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// ParseSNMPVersion accepts "1", "2", "2c" and "3". An empty string means v2c.
func ParseSNMPVersion(version string) (gosnmp.SnmpVersion, error) {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case "1", "v1":
		return gosnmp.Version1, nil
	case "2", "2c", "v2", "v2c", "":
		return gosnmp.Version2c, nil
	case "3", "v3":
		return gosnmp.Version3, nil
	default:
		return gosnmp.Version2c, fmt.Errorf("unsupported SNMP version '%s'", version)
	}
}

func ParseSNMPv3SecurityLevel(level string) (gosnmp.SnmpV3MsgFlags, error) {
	switch strings.ToLower(level) {
	case "1", "none", "noauthnopriv", "":
		return gosnmp.NoAuthNoPriv, nil
	case "2", "authnopriv":
		return gosnmp.AuthNoPriv, nil
	case "3", "authpriv":
		return gosnmp.AuthPriv, nil
	default:
		return gosnmp.NoAuthNoPriv, fmt.Errorf("unknown SNMPv3 security level '%s'", level)
	}
}

func ParseSNMPv3AuthProtocol(protocol string) (gosnmp.SnmpV3AuthProtocol, error) {
	switch strings.ToLower(protocol) {
	case "1", "none", "noauth", "":
		return gosnmp.NoAuth, nil
	case "2", "md5":
		return gosnmp.MD5, nil
	case "3", "sha":
		return gosnmp.SHA, nil
	case "4", "sha224":
		return gosnmp.SHA224, nil
	case "5", "sha256":
		return gosnmp.SHA256, nil
	case "6", "sha384":
		return gosnmp.SHA384, nil
	case "7", "sha512":
		return gosnmp.SHA512, nil
	default:
		return gosnmp.NoAuth, fmt.Errorf("unknown SNMPv3 authentication protocol '%s'", protocol)
	}
}

func ParseSNMPv3PrivProtocol(protocol string) (gosnmp.SnmpV3PrivProtocol, error) {
	switch strings.ToLower(protocol) {
	case "1", "none", "nopriv", "":
		return gosnmp.NoPriv, nil
	case "2", "des":
		return gosnmp.DES, nil
	case "3", "aes":
		return gosnmp.AES, nil
	case "4", "aes192":
		return gosnmp.AES192, nil
	case "5", "aes256":
		return gosnmp.AES256, nil
	case "6", "aes192c":
		return gosnmp.AES192C, nil
	case "7", "aes256c":
		return gosnmp.AES256C, nil
	default:
		return gosnmp.NoPriv, fmt.Errorf("unknown SNMPv3 privacy protocol '%s'", protocol)
	}
}

// SnmpClientConnInfo describes the client target without secrets.
func SnmpClientConnInfo(c gosnmp.Handler) string {
	var info strings.Builder
	info.WriteString(fmt.Sprintf("hostname='%s',port='%d',snmp_version='%s'", c.Target(), c.Port(), c.Version()))
	switch c.Version() {
	case gosnmp.Version1, gosnmp.Version2c:
		info.WriteString(",community='***'")
	case gosnmp.Version3:
		info.WriteString(fmt.Sprintf(",security_level='%d'", c.MsgFlags()))
		if c.ContextName() != "" {
			info.WriteString(fmt.Sprintf(",context='%s'", c.ContextName()))
		}
	}
	return info.String()
}
