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
	"errors"
	"time"

	"github.com/VolantMQ/edgeconnector/packet"
)

var errDial = errors.New("dial refused")

// mockTransport counts every call and serves inbound bytes from a queue
type mockTransport struct {
	connected bool
	dialErr   error
	in        []byte
	writes    [][]byte
	stops     int
	dials     int

	// reply is queued whenever a CONNECT is written, nil means no reply
	connAck []byte
}

func newMock() *mockTransport {
	return &mockTransport{
		connAck: []byte{0x20, 0x02, 0x00, 0x00},
	}
}

func (m *mockTransport) Connect(string, uint16) error {
	m.dials++
	if m.dialErr != nil {
		return m.dialErr
	}

	m.connected = true

	return nil
}

func (m *mockTransport) Write(b []byte) (int, error) {
	if !m.connected {
		return 0, errors.New("closed")
	}

	m.writes = append(m.writes, append([]byte(nil), b...))

	if len(b) > 0 && packet.TypeOf(b[0]) == packet.CONNECT && m.connAck != nil {
		m.in = append(m.in, m.connAck...)
	}

	return len(b), nil
}

func (m *mockTransport) ReadByte() (byte, error) {
	if len(m.in) == 0 {
		return 0, errors.New("empty")
	}

	b := m.in[0]
	m.in = m.in[1:]

	return b, nil
}

func (m *mockTransport) Available() int {
	return len(m.in)
}

func (m *mockTransport) Connected() bool {
	return m.connected
}

func (m *mockTransport) Stop() {
	m.stops++
	m.connected = false
}

func (m *mockTransport) Flush() error {
	return nil
}

func (m *mockTransport) feed(b ...byte) {
	m.in = append(m.in, b...)
}

func (m *mockTransport) last() []byte {
	if len(m.writes) == 0 {
		return nil
	}

	return m.writes[len(m.writes)-1]
}

func (m *mockTransport) written() []byte {
	return bytes.Join(m.writes, nil)
}

// fakeClock advances by step on every reading
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}
