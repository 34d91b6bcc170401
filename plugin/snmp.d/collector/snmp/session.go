// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"errors"

	"github.com/gosnmp/gosnmp"
)

// session is the lazily opened connection of one host. Only the poll of that host
// touches it, so it needs no locking.
type session struct {
	newClient func() (gosnmp.Handler, error)
	client    gosnmp.Handler
}

func (s *session) open() (gosnmp.Handler, error) {
	if s.client != nil {
		return s.client, nil
	}

	client, err := s.newClient()
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if err := client.Connect(); err != nil {
		return nil, &TransportError{Err: err}
	}

	s.client = client
	return client, nil
}

// invalidate drops the connection; the next request opens a new one.
func (s *session) invalidate() {
	if s.client == nil {
		return
	}
	_ = s.client.Close()
	s.client = nil
}

func (s *session) isOpen() bool { return s.client != nil }

func (s *session) get(oids []string) (*gosnmp.SnmpPacket, error) {
	return s.do(func(c gosnmp.Handler) (*gosnmp.SnmpPacket, error) { return c.Get(oids) })
}

func (s *session) getNext(oids []string) (*gosnmp.SnmpPacket, error) {
	return s.do(func(c gosnmp.Handler) (*gosnmp.SnmpPacket, error) { return c.GetNext(oids) })
}

func (s *session) getBulk(oids []string, maxRepetitions uint32) (*gosnmp.SnmpPacket, error) {
	return s.do(func(c gosnmp.Handler) (*gosnmp.SnmpPacket, error) { return c.GetBulk(oids, 0, maxRepetitions) })
}

func (s *session) do(fn func(gosnmp.Handler) (*gosnmp.SnmpPacket, error)) (*gosnmp.SnmpPacket, error) {
	client, err := s.open()
	if err != nil {
		return nil, err
	}

	pkt, err := fn(client)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if pkt == nil {
		return nil, &TransportError{Err: errors.New("no response packet")}
	}
	if pkt.Error != gosnmp.NoError {
		// ErrorIndex is 1-based, 0 means the agent did not point at a varbind
		return pkt, &ProtocolError{Status: pkt.Error, Index: int(pkt.ErrorIndex) - 1}
	}
	return pkt, nil
}
