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
package transport

import (
	"bufio"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TCP plain socket transport
type TCP struct {
	cfg       Config
	log       *zap.SugaredLogger
	lock      sync.Mutex
	conn      net.Conn
	reader    *bufio.Reader
	connected atomic.Bool
}

var _ Transport = (*TCP)(nil)

// NewTCP allocates TCP transport, connection is not established
func NewTCP(c Config) *TCP {
	c.normalize()

	return &TCP{
		cfg: c,
		log: c.Log.Named("tcp"),
	}
}

// Connect ...
func (t *TCP) Connect(host string, port uint16) error {
	t.Stop()

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	d := net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}

	t.lock.Lock()
	t.conn = conn
	t.reader = bufio.NewReader(conn)
	t.lock.Unlock()

	t.connected.Store(true)

	t.log.Debugf("connected to %s", addr)

	return nil
}

// Write ...
func (t *TCP) Write(b []byte) (int, error) {
	conn := t.current()
	if conn == nil {
		return 0, ErrNotConnected
	}

	n, err := conn.Write(b)
	if err != nil {
		t.down(err)
		return n, errors.Wrap(err, "write")
	}

	return n, nil
}

// ReadByte ...
func (t *TCP) ReadByte() (byte, error) {
	if t.current() == nil {
		return 0, ErrNotConnected
	}

	b, err := t.reader.ReadByte()
	if err != nil {
		t.down(err)
		return 0, err
	}

	return b, nil
}

// Available reports buffered bytes.
// When buffer is empty socket is probed with a short read deadline.
func (t *TCP) Available() int {
	conn := t.current()
	if conn == nil {
		return 0
	}

	if n := t.reader.Buffered(); n > 0 {
		return n
	}

	_ = conn.SetReadDeadline(time.Now().Add(t.cfg.PollInterval))
	_, err := t.reader.Peek(1)
	_ = conn.SetReadDeadline(time.Time{})

	if err != nil {
		if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
			t.down(err)
		}

		return 0
	}

	return t.reader.Buffered()
}

// Connected ...
func (t *TCP) Connected() bool {
	return t.connected.Load()
}

// Stop ...
func (t *TCP) Stop() {
	t.lock.Lock()
	conn := t.conn
	t.conn = nil
	t.lock.Unlock()

	t.connected.Store(false)

	if conn != nil {
		if err := conn.Close(); err != nil {
			t.log.Debugf("close: %s", err.Error())
		}
	}
}

// Flush writes are unbuffered
func (t *TCP) Flush() error {
	return nil
}

func (t *TCP) current() net.Conn {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.conn
}

func (t *TCP) down(err error) {
	if t.connected.Swap(false) {
		t.log.Errorf("connection lost: %s", err.Error())
	}
}
