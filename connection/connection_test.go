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
package connection

import (
	"bytes"
	"testing"
	"time"

	"github.com/VolantMQ/vlapi/mqttp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VolantMQ/edgeconnector/metrics"
	"github.com/VolantMQ/edgeconnector/packet"
)

func newEngine(t *testing.T, m *mockTransport, opts ...Option) (*Engine, *fakeClock) {
	clk := newClock()

	opts = append([]Option{Clock(clk.now), Server("broker", 1883)}, opts...)

	e, err := New(m, opts...)
	require.NoError(t, err)

	return e, clk
}

func connectEngine(t *testing.T, m *mockTransport, opts ...Option) (*Engine, *fakeClock) {
	e, clk := newEngine(t, m, opts...)

	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1", CleanSession: true}))
	require.True(t, e.Connected())

	m.writes = nil

	return e, clk
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(newMock(), BufferSize(8))
	require.Error(t, err)

	_, err = New(newMock(), SocketTimeout(0))
	require.Error(t, err)

	_, err = New(newMock(), KeepAlive(-time.Second))
	require.Error(t, err)

	e, err := New(newMock())
	require.NoError(t, err)
	require.Equal(t, StateDisconnected, e.State())
	require.Equal(t, DefaultBufferSize, e.BufferSize())
	require.Equal(t, DefaultKeepAlive, e.KeepAlivePeriod())
}

func TestConnect(t *testing.T) {
	m := newMock()
	stat := metrics.New()
	e, _ := newEngine(t, m, KeepAlive(15*time.Second), Metric(stat.Packets()))

	err := e.Connect(packet.Connect{
		ClientID:     "dev1",
		Username:     []byte("model"),
		Password:     []byte("code"),
		CleanSession: true,
	})
	require.NoError(t, err)
	require.Equal(t, StateConnected, e.State())
	require.True(t, e.Connected())
	require.Equal(t, 1, m.dials)
	require.Len(t, m.writes, 1)

	pkt, _, err := mqttp.Decode(mqttp.ProtocolV311, m.writes[0])
	require.NoError(t, err)

	msg, ok := pkt.(*mqttp.Connect)
	require.True(t, ok)
	require.Equal(t, []byte("dev1"), msg.ClientID())
	require.Equal(t, uint16(15), msg.KeepAlive())
	require.Equal(t, byte(0xC2), m.writes[0][9])

	st := stat.Snapshot()
	require.Equal(t, metrics.FlowCounter{Sent: 1}, st.Packets.ByType[packet.CONNECT])
	require.Equal(t, metrics.FlowCounter{Recv: 1}, st.Packets.ByType[packet.CONNACK])

	// already connected is a no-op
	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1"}))
	require.Len(t, m.writes, 1)
}

func TestConnectReusesConnectedTransport(t *testing.T) {
	m := newMock()
	m.connected = true

	e, _ := newEngine(t, m)
	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1"}))
	require.Equal(t, 0, m.dials)
}

func TestConnectDialFailure(t *testing.T) {
	m := newMock()
	m.dialErr = errDial

	e, _ := newEngine(t, m)

	err := e.Connect(packet.Connect{ClientID: "dev1"})
	require.Equal(t, ErrConnectFailed, errors.Cause(err))
	require.Equal(t, StateConnectFailed, e.State())
	require.Empty(t, m.writes)
}

func TestConnectRejected(t *testing.T) {
	m := newMock()
	m.connAck = []byte{0x20, 0x02, 0x00, 0x04}

	e, _ := newEngine(t, m)

	err := e.Connect(packet.Connect{ClientID: "dev1"})
	require.Equal(t, packet.CodeRefusedBadUsernameOrPassword, errors.Cause(err))
	require.Equal(t, StateBadCredentials, e.State())
	require.True(t, e.State().Rejected())
	require.False(t, e.Connected())
	require.Equal(t, 1, m.stops)
}

func TestConnectUnknownReturnCode(t *testing.T) {
	m := newMock()
	m.connAck = []byte{0x20, 0x02, 0x00, 0x86}

	e, _ := newEngine(t, m)

	err := e.Connect(packet.Connect{ClientID: "dev1"})
	require.Equal(t, ErrProtocol, errors.Cause(err))
	require.Equal(t, StateBadProtocol, e.State())
	require.True(t, e.State().Rejected())
	require.False(t, e.Connected())
	require.Equal(t, 1, m.stops)
}

func TestNewStartsDisconnected(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	e, _ := newEngine(t, newMock(), Log(zap.New(core).Sugar()))

	require.Equal(t, StateDisconnected, e.State())
	require.False(t, e.Connected())
	require.Zero(t, logs.Len())

	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1"}))
	require.Equal(t, 1, logs.FilterMessage("state disconnected -> connected").Len())
}

func TestConnectTimeout(t *testing.T) {
	m := newMock()
	m.connAck = nil

	e, clk := newEngine(t, m, SocketTimeout(2*time.Second))
	clk.step = 100 * time.Millisecond

	err := e.Connect(packet.Connect{ClientID: "dev1"})
	require.Equal(t, ErrConnectTimeout, err)
	require.Equal(t, StateConnectionTimeout, e.State())
	require.False(t, m.connected)
}

func TestConnectUnexpectedReply(t *testing.T) {
	m := newMock()
	m.connAck = []byte{0xD0, 0x00}

	e, _ := newEngine(t, m)

	err := e.Connect(packet.Connect{ClientID: "dev1"})
	require.Equal(t, ErrProtocol, errors.Cause(err))
	require.False(t, e.Connected())
}

func TestConnectCapacity(t *testing.T) {
	m := newMock()
	e, _ := newEngine(t, m, BufferSize(MinBufferSize))

	err := e.Connect(packet.Connect{ClientID: "a-client-id-longer-than-the-buffer"})
	require.Equal(t, ErrCapacity, errors.Cause(err))
	require.Empty(t, m.writes)
	require.False(t, m.connected)
	require.False(t, e.Connected())
}

func TestConnectRestartsPacketIDs(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	for i := 0; i < 3; i++ {
		_, err := e.Subscribe("x/y", packet.QoS0)
		require.NoError(t, err)
	}

	e.Disconnect()
	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1"}))

	id, err := e.Subscribe("x/y", packet.QoS1)
	require.NoError(t, err)
	require.Equal(t, packet.IDType(1), id)
}

func TestPublishScenario(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m, BufferSize(64))

	require.NoError(t, e.Publish("a/b", []byte("hello"), false))
	require.Len(t, m.writes, 1)

	w := m.writes[0]
	require.Len(t, w, 12)
	require.Equal(t, byte(0x30), w[0])
	require.Equal(t, byte(10), w[1])
	require.Equal(t, []byte{0, 3, 'a', '/', 'b', 'h', 'e', 'l', 'l', 'o'}, w[2:])

	require.NoError(t, e.Publish("a/b", []byte("hello"), true))
	require.Equal(t, byte(0x31), m.last()[0])

	pkt, _, err := mqttp.Decode(mqttp.ProtocolV311, m.last())
	require.NoError(t, err)

	msg, ok := pkt.(*mqttp.Publish)
	require.True(t, ok)
	require.Equal(t, "a/b", msg.Topic())
	require.Equal(t, []byte("hello"), msg.Payload())
}

func TestPublishParts(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m, BufferSize(64))

	require.NoError(t, e.PublishParts("t", false, []byte("head:"), []byte("body")))
	require.Equal(t, []byte{0x30, 12, 0, 1, 't', 'h', 'e', 'a', 'd', ':', 'b', 'o', 'd', 'y'}, m.last())
}

func TestPublishCapacityGuard(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m, BufferSize(32))

	// 5 + 2 + 3 + 23 = 33
	err := e.Publish("a/b", bytes.Repeat([]byte{'x'}, 23), false)
	require.Equal(t, ErrCapacity, err)
	require.Empty(t, m.writes)

	// 5 + 2 + 3 + 22 = 32 fits exactly
	require.NoError(t, e.Publish("a/b", bytes.Repeat([]byte{'x'}, 22), false))
	require.Len(t, m.writes, 1)
}

func TestPublishValidation(t *testing.T) {
	m := newMock()
	e, _ := newEngine(t, m)

	require.Equal(t, ErrNotConnected, e.Publish("a", nil, false))

	require.NoError(t, e.Connect(packet.Connect{ClientID: "dev1"}))
	require.Equal(t, packet.ErrInvalidTopic, e.Publish("", []byte("x"), false))
}

func TestSubscribeIDs(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	id, err := e.Subscribe("x/y", packet.QoS1)
	require.NoError(t, err)
	require.Equal(t, packet.IDType(1), id)
	require.Equal(t, []byte{0x82, 8, 0, 1, 0, 3, 'x', '/', 'y', 1}, m.last())

	id, err = e.Subscribe("x/y", packet.QoS1)
	require.NoError(t, err)
	require.Equal(t, packet.IDType(2), id)

	id, err = e.Unsubscribe("x/y")
	require.NoError(t, err)
	require.Equal(t, packet.IDType(3), id)
	require.Equal(t, []byte{0xA2, 7, 0, 3, 0, 3, 'x', '/', 'y'}, m.last())

	pkt, _, err := mqttp.Decode(mqttp.ProtocolV311, m.last())
	require.NoError(t, err)
	require.Equal(t, mqttp.UNSUBSCRIBE, pkt.Type())
}

func TestSubscribeIDWrap(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	e.nextID = 0xFFFF

	id, err := e.Subscribe("x", packet.QoS0)
	require.NoError(t, err)
	require.Equal(t, packet.IDType(1), id)
}

func TestSubscribeValidation(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)
	require.NoError(t, e.SetBufferSize(MinBufferSize))

	_, err := e.Subscribe("x", packet.QoS2)
	require.Equal(t, packet.ErrInvalidQoS, err)

	_, err = e.Subscribe("", packet.QoS0)
	require.Equal(t, packet.ErrInvalidTopic, err)

	// 5 + 2 + 2 + 7 + 1 = 17
	_, err = e.Subscribe("abcdefg", packet.QoS0)
	require.Equal(t, ErrCapacity, err)

	_, err = e.Subscribe("abcdef", packet.QoS0)
	require.NoError(t, err)

	_, err = e.Unsubscribe("abcdefgh")
	require.Equal(t, ErrCapacity, err)

	require.Len(t, m.writes, 1)

	m.connected = false

	_, err = e.Subscribe("x", packet.QoS0)
	require.Equal(t, ErrNotConnected, err)
}

func TestStreamedPublish(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)
	require.NoError(t, e.SetBufferSize(MinBufferSize))

	payload := bytes.Repeat([]byte{0xAB}, 300)

	require.NoError(t, e.BeginPublish("t", len(payload), false))
	require.Equal(t, []byte{0x30, 0xAF, 0x02, 0, 1, 't'}, m.last())

	require.Equal(t, ErrPublishPending, e.Publish("t", nil, false))

	for off := 0; off < len(payload); off += 100 {
		n, err := e.Write(payload[off : off+100])
		require.NoError(t, err)
		require.Equal(t, 100, n)
	}

	_, err := e.Write([]byte{1})
	require.Equal(t, ErrPublishOverflow, err)

	require.NoError(t, e.EndPublish())

	pkt, _, err := mqttp.Decode(mqttp.ProtocolV311, m.written())
	require.NoError(t, err)

	msg, ok := pkt.(*mqttp.Publish)
	require.True(t, ok)
	require.Equal(t, payload, msg.Payload())

	_, err = e.Write([]byte{1})
	require.Equal(t, ErrNoPublish, err)
}

func TestStreamedPublishShort(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	require.NoError(t, e.BeginPublish("t", 10, false))

	_, err := e.Write([]byte("abc"))
	require.NoError(t, err)

	require.Equal(t, ErrPublishShort, e.EndPublish())
	require.Equal(t, StateDisconnected, e.State())
	require.False(t, m.connected)
}

func TestDisconnect(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	e.Disconnect()

	require.Equal(t, []byte{0xE0, 0x00}, m.last())
	require.Equal(t, StateDisconnected, e.State())
	require.False(t, e.Connected())
	require.Equal(t, 1, m.stops)
}

func TestConnectionLost(t *testing.T) {
	m := newMock()
	e, _ := connectEngine(t, m)

	m.connected = false

	require.False(t, e.Connected())
	require.Equal(t, StateConnectionLost, e.State())
	require.Equal(t, 1, m.stops)

	// demotion happens once
	require.False(t, e.Connected())
	require.Equal(t, 1, m.stops)

	require.Equal(t, ErrNotConnected, e.Loop())
}

func TestSetBufferSize(t *testing.T) {
	e, _ := newEngine(t, newMock())

	require.Error(t, e.SetBufferSize(MinBufferSize-1))
	require.NoError(t, e.SetBufferSize(128))
	require.Equal(t, 128, e.BufferSize())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "connected", StateConnected.String())
	require.Equal(t, "rejected: unauthorized", StateUnauthorized.String())
	require.Equal(t, "state(9)", State(9).String())
	require.False(t, StateConnectionLost.Rejected())
}
