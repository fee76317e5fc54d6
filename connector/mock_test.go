// Copyright (c) 2014 The VolantMQ Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package connector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VolantMQ/edgeconnector/configuration"
	"github.com/VolantMQ/edgeconnector/message"
	"github.com/VolantMQ/edgeconnector/packet"
)

// mockBroker answers CONNECT with connAck and records everything written
type mockBroker struct {
	connected bool
	in        []byte
	writes    [][]byte
	dials     int
	connAck   []byte
}

func newMockBroker() *mockBroker {
	return &mockBroker{
		connAck: []byte{0x20, 0x02, 0x00, 0x00},
	}
}

func (m *mockBroker) Connect(string, uint16) error {
	m.dials++
	m.connected = true
	m.in = nil

	return nil
}

func (m *mockBroker) Write(b []byte) (int, error) {
	if !m.connected {
		return 0, errors.New("closed")
	}

	m.writes = append(m.writes, append([]byte(nil), b...))

	if len(b) > 0 && packet.TypeOf(b[0]) == packet.CONNECT {
		m.in = append(m.in, m.connAck...)
	}

	return len(b), nil
}

func (m *mockBroker) ReadByte() (byte, error) {
	if len(m.in) == 0 {
		return 0, errors.New("empty")
	}

	b := m.in[0]
	m.in = m.in[1:]

	return b, nil
}

func (m *mockBroker) Available() int  { return len(m.in) }
func (m *mockBroker) Connected() bool { return m.connected }
func (m *mockBroker) Stop()           { m.connected = false }
func (m *mockBroker) Flush() error    { return nil }

func (m *mockBroker) last() []byte {
	if len(m.writes) == 0 {
		return nil
	}

	return m.writes[len(m.writes)-1]
}

// publish queues inbound PUBLISH QoS0
func (m *mockBroker) publish(t *testing.T, topic string, payload []byte) {
	body := make([]byte, 2+len(topic)+len(payload))
	_, err := packet.WriteLPString(body, topic)
	require.NoError(t, err)
	copy(body[2+len(topic):], payload)

	hdr := make([]byte, packet.MaxHeaderSize)
	hdr[0] = packet.PUBLISH.Header()
	n, err := packet.EncodeRemainingLength(hdr[1:], len(body))
	require.NoError(t, err)

	m.in = append(m.in, hdr[:1+n]...)
	m.in = append(m.in, body...)
}

type event struct {
	kind    string
	topic   string
	typ     message.Type
	payload []byte
	opts    []message.KV
}

type recorder struct {
	events []event
}

func (r *recorder) OnConnect(*Connector) {
	r.events = append(r.events, event{kind: "connect"})
}

func (r *recorder) OnDisconnect(*Connector) {
	r.events = append(r.events, event{kind: "disconnect"})
}

func (r *recorder) OnMessage(_ *Connector, topic string, m *message.Envelope) {
	r.events = append(r.events, event{kind: "message", topic: topic, typ: m.Type, payload: append([]byte(nil), m.Data()...), opts: m.Options()})
}

func (r *recorder) OnUnknownMessage(_ *Connector, topic string, m *message.Envelope) {
	r.events = append(r.events, event{kind: "unknown", topic: topic, typ: m.Type, payload: append([]byte(nil), m.Data()...)})
}

func (r *recorder) kinds() []string {
	var k []string
	for _, e := range r.events {
		k = append(k, e.kind)
	}

	return k
}

func testConfig() *configuration.Config {
	cfg := configuration.DefaultConfig()
	cfg.Connector.Descriptor = configuration.DescriptorConfig{
		Name:         "thermo",
		Vendor:       "acme",
		Model:        "T-100",
		SerialNumber: "SN42",
		AccessCode:   "secret",
	}
	cfg.Connector.Network.Gateway = "192.168.1.1"

	return cfg
}

func newTestConnector(t *testing.T, cfg *configuration.Config) (*Connector, *mockBroker, *recorder) {
	m := newMockBroker()
	r := &recorder{}

	c, err := New(cfg, WithTransport(m), WithHandler(r))
	require.NoError(t, err)

	return c, m, r
}
