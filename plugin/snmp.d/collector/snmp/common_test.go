// SPDX-License-Identifier: GPL-3.0-or-later

package snmp

import (
	"slices"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gosnmp/gosnmp"
	snmpmock "github.com/gosnmp/gosnmp/mocks"
	"github.com/stretchr/testify/require"

	"github.com/snmpcollect/snmpcollect/pkg/metrix"
	"github.com/snmpcollect/snmpcollect/pkg/oid"
)

func setMockClientInitExpect(m *snmpmock.MockHandler) {
	m.EXPECT().SetTarget(gomock.Any()).AnyTimes()
	m.EXPECT().SetPort(gomock.Any()).AnyTimes()
	m.EXPECT().SetRetries(gomock.Any()).AnyTimes()
	m.EXPECT().SetTimeout(gomock.Any()).AnyTimes()
	m.EXPECT().SetMaxOids(gomock.Any()).AnyTimes()
	m.EXPECT().SetCommunity(gomock.Any()).AnyTimes()
	m.EXPECT().SetVersion(gomock.Any()).AnyTimes()
	m.EXPECT().SetSecurityModel(gomock.Any()).AnyTimes()
	m.EXPECT().SetMsgFlags(gomock.Any()).AnyTimes()
	m.EXPECT().SetContextName(gomock.Any()).AnyTimes()
	m.EXPECT().SetSecurityParameters(gomock.Any()).AnyTimes()
	m.EXPECT().Target().Return("192.0.2.1").AnyTimes()
	m.EXPECT().Port().Return(uint16(161)).AnyTimes()
	m.EXPECT().Version().Return(gosnmp.Version2c).AnyTimes()
	m.EXPECT().MsgFlags().Return(gosnmp.NoAuthNoPriv).AnyTimes()
	m.EXPECT().ContextName().Return("").AnyTimes()
	m.EXPECT().Close().Return(nil).AnyTimes()
}

// newTestCollector builds an initialised collector whose client is a gomock handler.
// Connect is not expected here; tests set it up themselves.
func newTestCollector(t *testing.T, cfg Config, data ...DataConfig) (*Collector, *snmpmock.MockHandler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockSNMP := snmpmock.NewMockHandler(ctrl)
	setMockClientInitExpect(mockSNMP)

	defs, err := NewDefinitions(data)
	require.NoError(t, err)

	collr := New()
	collr.Config = cfg
	collr.newSnmpClient = func() gosnmp.Handler { return mockSNMP }
	require.NoError(t, collr.Init(defs))

	return collr, mockSNMP
}

func testHostConfig(collect ...string) Config {
	cfg := DefaultConfig()
	cfg.Name = "router1"
	cfg.Address = "192.0.2.1"
	cfg.CollectData = collect
	return cfg
}

// newTestSession returns a session already bound to the mock, with Connect expected once.
func newTestSession(t *testing.T) (*session, *snmpmock.MockHandler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockSNMP := snmpmock.NewMockHandler(ctrl)
	mockSNMP.EXPECT().Connect().Return(nil)
	mockSNMP.EXPECT().Close().Return(nil).AnyTimes()

	sess := &session{newClient: func() (gosnmp.Handler, error) { return mockSNMP, nil }}
	return sess, mockSNMP
}

func expectGetNext(m *snmpmock.MockHandler, oids []string, pdus ...gosnmp.SnmpPDU) *gomock.Call {
	return m.EXPECT().GetNext(oids).Return(&gosnmp.SnmpPacket{Variables: pdus}, nil)
}

func expectGetBulk(m *snmpmock.MockHandler, oids []string, maxReps uint32, pdus ...gosnmp.SnmpPDU) *gomock.Call {
	return m.EXPECT().GetBulk(oids, uint8(0), maxReps).Return(&gosnmp.SnmpPacket{Variables: pdus}, nil)
}

func createPDU(name string, pduType gosnmp.Asn1BER, value any) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{
		Name:  name,
		Type:  pduType,
		Value: value,
	}
}

func createStringPDU(name string, value string) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.OctetString, []byte(value))
}

func createIntegerPDU(name string, value int) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.Integer, value)
}

func createCounter32PDU(name string, value uint) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.Counter32, value)
}

func createCounter64PDU(name string, value uint64) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.Counter64, value)
}

func createGauge32PDU(name string, value uint) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.Gauge32, value)
}

func createEndOfMibViewPDU(name string) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.EndOfMibView, nil)
}

func createNoSuchObjectPDU(name string) gosnmp.SnmpPDU {
	return createPDU(name, gosnmp.NoSuchObject, nil)
}

func textCells(col *column) map[string]string {
	m := make(map[string]string, len(col.cells))
	for _, c := range col.cells {
		m[c.suffix.String()] = c.text
	}
	return m
}

func suffixes(col *column) []string {
	var out []string
	for _, c := range col.cells {
		out = append(out, c.suffix.String())
	}
	return out
}

func textColumn(name string, cells map[string]string) *column {
	col := newColumn(name, oid.MustParse("1.3.6.1.4.1.99999.1"), false)
	for _, s := range sortedKeys(cells) {
		col.cells = append(col.cells, cell{suffix: oid.MustParse(s), text: cells[s]})
	}
	col.leave()
	return col
}

func valueColumn(cells map[string]float64) *column {
	col := newColumn("value", oid.MustParse("1.3.6.1.4.1.99999.2"), true)
	for _, s := range sortedKeys(cells) {
		col.cells = append(col.cells, cell{suffix: oid.MustParse(s), value: metrix.GaugeFloat(cells[s])})
	}
	col.leave()
	return col
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]oid.OID, 0, len(m))
	for k := range m {
		keys = append(keys, oid.MustParse(k))
	}
	slices.SortFunc(keys, oid.Compare)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
