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
	"errors"
	"io"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/VolantMQ/edgeconnector/configuration"
	"github.com/VolantMQ/edgeconnector/metrics"
	"github.com/VolantMQ/edgeconnector/packet"
	"github.com/VolantMQ/edgeconnector/transport"
)

// nolint: golint
var (
	ErrNotConnected     = errors.New("connection: not connected")
	ErrConnectFailed    = errors.New("connection: connect failed")
	ErrConnectTimeout   = errors.New("connection: timeout waiting for CONNACK")
	ErrKeepAliveTimeout = errors.New("connection: keep alive timeout")
	ErrProtocol         = errors.New("connection: protocol violation")
	ErrCapacity         = errors.New("connection: packet exceeds buffer capacity")
	ErrShortWrite       = errors.New("connection: short write")
	ErrPublishPending   = errors.New("connection: streamed publish in progress")
	ErrNoPublish        = errors.New("connection: no streamed publish in progress")
	ErrPublishOverflow  = errors.New("connection: streamed publish exceeds announced length")
	ErrPublishShort     = errors.New("connection: streamed publish shorter than announced length")
)

// nolint: golint
const (
	DefaultKeepAlive     = 30 * time.Second
	DefaultSocketTimeout = 15 * time.Second
	DefaultBufferSize    = 4096
	MinBufferSize        = 16
)

// Handler receives inbound PUBLISH messages.
// Payload aliases the engine working buffer and is valid only until the handler returns.
type Handler interface {
	OnPublish(topic string, payload []byte)
}

// HandlerFunc adapts function to Handler
type HandlerFunc func(topic string, payload []byte)

// OnPublish ...
func (f HandlerFunc) OnPublish(topic string, payload []byte) {
	f(topic, payload)
}

// Engine is a single session MQTT v3.1.1 client.
// It is not safe for concurrent use except State which may be queried from any goroutine.
type Engine struct {
	conn    transport.Transport
	log     *zap.SugaredLogger
	metric  metrics.Packets
	handler Handler
	sink    io.Writer
	now     func() time.Time

	buf  []byte
	host string
	port uint16

	keepAlive     time.Duration
	socketTimeout time.Duration
	readTimeout   bool

	state           atomic.Int32
	lastIn          time.Time
	lastOut         time.Time
	pingOutstanding bool
	nextID          packet.IDType

	// bytes left of a streamed publish, -1 when none
	streamLeft int
	one        [1]byte
}

// New allocates engine over t. Connection is not established.
func New(t transport.Transport, opts ...Option) (*Engine, error) {
	if t == nil {
		return nil, errors.New("connection: nil transport")
	}

	e := &Engine{
		conn:          t,
		log:           configuration.GetLogger().Named("connection"),
		metric:        metrics.Nop().Packets(),
		now:           time.Now,
		buf:           make([]byte, DefaultBufferSize),
		keepAlive:     DefaultKeepAlive,
		socketTimeout: DefaultSocketTimeout,
		readTimeout:   true,
		streamLeft:    -1,
	}

	e.state.Store(int32(StateDisconnected))

	if err := e.SetOptions(opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// State last known session state
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	if old := State(e.state.Swap(int32(s))); old != s {
		e.log.Debugf("state %s -> %s", old, s)
	}
}

// SetServer sets broker address dialed by Connect
func (e *Engine) SetServer(host string, port uint16) {
	e.host = host
	e.port = port
}

// SetBufferSize reallocates working buffer
func (e *Engine) SetBufferSize(n int) error {
	if n < MinBufferSize {
		return pkgerrors.Errorf("connection: buffer size %d below minimum %d", n, MinBufferSize)
	}

	if n != len(e.buf) {
		e.buf = make([]byte, n)
	}

	return nil
}

// BufferSize capacity of working buffer
func (e *Engine) BufferSize() int {
	return len(e.buf)
}

// KeepAlivePeriod ...
func (e *Engine) KeepAlivePeriod() time.Duration {
	return e.keepAlive
}

// Connected reports session is up.
// When transport went down under an established session state demotes to
// StateConnectionLost and transport is stopped.
func (e *Engine) Connected() bool {
	if !e.conn.Connected() {
		if e.State() == StateConnected {
			e.setState(StateConnectionLost)
			e.log.Warn("connection lost")
			_ = e.conn.Flush()
			e.conn.Stop()
		}

		return false
	}

	return e.State() == StateConnected
}

// Connect opens session. Already connected engine returns nil.
// Transport is dialed only when it is not connected yet.
// KeepAlive of c is overridden with the engine setting.
func (e *Engine) Connect(c packet.Connect) error {
	if e.Connected() {
		return nil
	}

	if !e.conn.Connected() {
		if err := e.conn.Connect(e.host, e.port); err != nil {
			e.setState(StateConnectFailed)
			e.log.Errorf("connect %s: %s", e.address(), err.Error())
			return pkgerrors.Wrap(ErrConnectFailed, err.Error())
		}
	}

	e.nextID = 0
	e.streamLeft = -1

	c.KeepAlive = uint16(e.keepAlive / time.Second)

	length, err := c.Encode(e.buf[packet.MaxHeaderSize:])
	if err != nil {
		e.conn.Stop()
		if err == packet.ErrInsufficientBufferSize {
			return pkgerrors.Wrap(ErrCapacity, "CONNECT")
		}
		return err
	}

	if err = e.writePacket(packet.CONNECT.Header(), length); err != nil {
		e.conn.Stop()
		e.setState(StateConnectFailed)
		return err
	}

	e.lastIn = e.now()
	e.lastOut = e.lastIn

	for e.conn.Available() == 0 {
		if e.now().Sub(e.lastIn) >= e.socketTimeout {
			e.setState(StateConnectionTimeout)
			e.conn.Stop()
			return ErrConnectTimeout
		}

		if !e.conn.Connected() {
			e.setState(StateConnectFailed)
			e.conn.Stop()
			return pkgerrors.Wrap(ErrConnectFailed, "closed by broker")
		}

		runtime.Gosched()
	}

	n, llen, err := e.readPacket()
	if err != nil {
		return err
	}

	if n == 0 {
		e.setState(StateConnectionTimeout)
		e.conn.Stop()
		return ErrConnectTimeout
	}

	if n != 4 || packet.TypeOf(e.buf[0]) != packet.CONNACK {
		e.conn.Stop()
		return pkgerrors.Wrapf(ErrProtocol, "unexpected %s in reply to CONNECT", packet.TypeOf(e.buf[0]).Name())
	}

	e.metric.OnRecv(packet.CONNACK)

	_, code, _ := packet.DecodeConnAck(e.buf[1+llen : n])
	if !code.IsValid() {
		e.setState(StateBadProtocol)
		e.conn.Stop()
		e.log.Warnf("connection refused with unknown return code 0x%02x", byte(code))
		return pkgerrors.Wrapf(ErrProtocol, "CONNACK return code 0x%02x", byte(code))
	}

	if code != packet.CodeSuccess {
		e.setState(State(code))
		e.conn.Stop()
		e.log.Warnf("connection refused: %s", code.Desc())
		return pkgerrors.Wrap(code, "connection refused")
	}

	e.lastIn = e.now()
	e.pingOutstanding = false
	e.setState(StateConnected)

	e.log.Debugf("connected as %q keep alive %s", c.ClientID, e.keepAlive)

	return nil
}

// Disconnect sends DISCONNECT and closes transport
func (e *Engine) Disconnect() {
	pkt := packet.Control(packet.DISCONNECT)
	if err := e.send(pkt[:]); err != nil {
		e.log.Debugf("disconnect: %s", err.Error())
	}

	e.setState(StateDisconnected)
	_ = e.conn.Flush()
	e.conn.Stop()

	e.lastIn = e.now()
	e.lastOut = e.lastIn
	e.streamLeft = -1
}

func (e *Engine) nextPacketID() packet.IDType {
	e.nextID++
	if e.nextID == 0 {
		e.nextID = 1
	}

	return e.nextID
}

func (e *Engine) address() string {
	return e.host + ":" + strconv.Itoa(int(e.port))
}
