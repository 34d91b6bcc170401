// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"fmt"

	"github.com/gosnmp/gosnmp"
)

// TransportError means the agent could not be reached or the session could not be opened.
// It aborts the current poll of the host and invalidates its session.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is an error-status response. Index is the zero-based position of the
// offending OID in the request, or -1 when the agent did not name one.
type ProtocolError struct {
	Status gosnmp.SNMPError
	Index  int
}

func (e *ProtocolError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("agent returned error status %s", e.Status)
	}
	return fmt.Sprintf("agent returned error status %s for request index %d", e.Status, e.Index)
}

// DecodeError is reported next to a sentinel value when a wire value cannot be
// converted. It never aborts a walk.
type DecodeError struct {
	Kind WireKind
	ASN  gosnmp.Asn1BER
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Kind == WireUnsupported:
		return fmt.Sprintf("unsupported ASN type %s (0x%02x)", e.ASN, byte(e.ASN))
	case e.Err != nil:
		return fmt.Sprintf("parse %s '%s': %v", e.Kind, e.Text, e.Err)
	default:
		return fmt.Sprintf("cannot decode %s", e.Kind)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNull reports whether the agent returned an explicit NULL, which is logged less loudly.
func (e *DecodeError) IsNull() bool { return e.Kind == WireUnsupported && e.ASN == gosnmp.Null }
