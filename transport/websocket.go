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
	"io"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SubProtocol negotiated with the broker
const SubProtocol = "mqtt"

// WebSocket carries MQTT in binary frames.
// Inbound frames are queued by a reader goroutine and served byte by byte.
type WebSocket struct {
	cfg       Config
	log       *zap.SugaredLogger
	lock      sync.Mutex
	conn      *websocket.Conn
	frames    chan []byte
	done      sync.WaitGroup
	rem       []byte
	connected atomic.Bool
}

var _ Transport = (*WebSocket)(nil)

// NewWebSocket allocates websocket transport, connection is not established
func NewWebSocket(c Config) *WebSocket {
	c.normalize()

	return &WebSocket{
		cfg: c,
		log: c.Log.Named("ws"),
	}
}

// Connect ...
func (t *WebSocket) Connect(host string, port uint16) error {
	t.Stop()

	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(host, strconv.Itoa(int(port))),
		Path:   t.cfg.Path,
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: t.cfg.DialTimeout,
		Subprotocols:     []string{SubProtocol},
	}

	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return errors.Wrapf(err, "dial %s", u.String())
	}

	frames := make(chan []byte, 16)

	t.lock.Lock()
	t.conn = conn
	t.frames = frames
	t.rem = nil
	t.lock.Unlock()

	t.connected.Store(true)

	t.done.Add(1)
	go t.reader(conn, frames)

	t.log.Debugf("connected to %s", u.String())

	return nil
}

func (t *WebSocket) reader(conn *websocket.Conn, frames chan<- []byte) {
	defer func() {
		close(frames)
		t.done.Done()
	}()

	for {
		mType, data, err := conn.ReadMessage()
		if err != nil {
			t.down(err)
			return
		}

		if mType != websocket.BinaryMessage || len(data) == 0 {
			continue
		}

		frames <- data
	}
}

// Write sends b as a single binary frame
func (t *WebSocket) Write(b []byte) (int, error) {
	t.lock.Lock()
	conn := t.conn
	t.lock.Unlock()

	if conn == nil {
		return 0, ErrNotConnected
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		t.down(err)
		return 0, errors.Wrap(err, "write")
	}

	return len(b), nil
}

// ReadByte ...
func (t *WebSocket) ReadByte() (byte, error) {
	for len(t.rem) == 0 {
		frames := t.queue()
		if frames == nil {
			return 0, ErrNotConnected
		}

		data, ok := <-frames
		if !ok {
			return 0, io.EOF
		}

		t.rem = data
	}

	b := t.rem[0]
	t.rem = t.rem[1:]

	return b, nil
}

// Available drains queued frames without blocking
func (t *WebSocket) Available() int {
	frames := t.queue()
	if frames == nil {
		return len(t.rem)
	}

	for {
		select {
		case data, ok := <-frames:
			if !ok {
				return len(t.rem)
			}

			t.rem = append(t.rem, data...)
		default:
			return len(t.rem)
		}
	}
}

// Connected ...
func (t *WebSocket) Connected() bool {
	return t.connected.Load()
}

// Stop ...
func (t *WebSocket) Stop() {
	t.lock.Lock()
	conn := t.conn
	frames := t.frames
	t.conn = nil
	t.lock.Unlock()

	t.connected.Store(false)

	if conn == nil {
		return
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	if err := conn.Close(); err != nil {
		t.log.Debugf("close: %s", err.Error())
	}

	// unblock reader stuck on a full queue
	go func() {
		for range frames {
		}
	}()

	t.done.Wait()
}

// Flush every write is a complete frame
func (t *WebSocket) Flush() error {
	return nil
}

func (t *WebSocket) queue() chan []byte {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.conn == nil {
		return nil
	}

	return t.frames
}

func (t *WebSocket) down(err error) {
	if t.connected.Swap(false) {
		t.log.Errorf("connection lost: %s", err.Error())
	}
}
