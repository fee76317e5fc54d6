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
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/VolantMQ/edgeconnector/configuration"
	"github.com/VolantMQ/edgeconnector/connection"
	"github.com/VolantMQ/edgeconnector/message"
	"github.com/VolantMQ/edgeconnector/metrics"
	"github.com/VolantMQ/edgeconnector/packet"
	"github.com/VolantMQ/edgeconnector/transport"
)

// Connector keeps a device session with the edge broker and exchanges envelopes over it.
// It is driven by Loop from a single goroutine, Status and Stats may be queried from any.
type Connector struct {
	log        *zap.SugaredLogger
	handler    Handler
	stats      metrics.Informer
	conn       transport.Transport
	engine     *connection.Engine
	engineOpts []connection.Option
	now        func() time.Time

	descriptor   Descriptor
	identity     Identity
	host         string
	port         uint16
	cleanSession bool
	will         *packet.Will

	status     atomic.Int32
	loopPeriod time.Duration
	lastTick   time.Time

	pub *message.Envelope
	sub *message.Envelope
	buf []byte
}

// New builds connector from configuration and applies its system.log section to the
// process logger. Nothing is dialed until the first Loop.
func New(cfg *configuration.Config, opts ...Option) (*Connector, error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := configuration.ConfigureLoggers(&cfg.System.Log); err != nil {
		return nil, errors.Wrap(err, "system.log")
	}

	c := &Connector{
		log:          configuration.GetLogger().Named("connector"),
		handler:      BaseHandler{},
		stats:        metrics.New(),
		now:          time.Now,
		cleanSession: cfg.Mqtt.CleanSession,
		loopPeriod:   cfg.Connector.LoopPeriod(),
		pub:          message.New(),
		sub:          message.New(),
		buf:          make([]byte, cfg.Mqtt.BufferSize),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	cc := &cfg.Connector
	dc := &cc.Descriptor

	c.descriptor = Descriptor{
		Name:         dc.Name,
		Vendor:       dc.Vendor,
		Model:        dc.Model,
		SerialNumber: dc.SerialNumber,
		AccessCode:   dc.AccessCode,
	}

	if err := c.resolveBroker(&cc.Connection, cc.Network.Gateway); err != nil {
		return nil, err
	}

	c.resolveIdentity(&cc.Connection)

	if c.conn == nil {
		t, err := transport.New(transport.Config{
			Kind:        cfg.Mqtt.Transport.Kind,
			Path:        cfg.Mqtt.Transport.Path,
			DialTimeout: cfg.Mqtt.Transport.DialTimeoutPeriod(),
		})
		if err != nil {
			return nil, err
		}

		c.conn = t
	}

	engineOpts := []connection.Option{
		connection.KeepAlive(cfg.Mqtt.KeepAlivePeriod()),
		connection.SocketTimeout(cfg.Mqtt.SocketTimeoutPeriod()),
		connection.BufferSize(cfg.Mqtt.BufferSize),
		connection.ReadTimeoutEnabled(cfg.Mqtt.ReadTimeout),
		connection.Server(c.host, c.port),
		connection.OnPublish(connection.HandlerFunc(c.dispatch)),
		connection.Metric(c.stats.Packets()),
	}

	var err error
	if c.engine, err = connection.New(transport.NewMetered(c.conn, c.stats.Bytes()), append(engineOpts, c.engineOpts...)...); err != nil {
		return nil, err
	}

	c.status.Store(int32(StatusDisconnected))

	c.log.Infof("device %q broker %s:%d client id %q", c.descriptor.Name, c.host, c.port, c.identity.ClientID)

	return c, nil
}

func (c *Connector) resolveBroker(cc *configuration.ConnectionConfig, gateway string) error {
	c.port = cc.Port
	if c.port == 0 {
		c.port = DefaultPort
	}

	if len(cc.Host) > 0 {
		c.host = cc.Host
		return nil
	}

	if len(gateway) == 0 {
		return ErrNoBroker
	}

	host, err := DefaultHost(gateway)
	if err != nil {
		return errors.Wrapf(err, "gateway %q", gateway)
	}

	c.host = host

	return nil
}

func (c *Connector) resolveIdentity(cc *configuration.ConnectionConfig) {
	c.identity = DeriveIdentity(c.descriptor)

	if len(cc.ClientID) > 0 {
		c.identity.ClientID = cc.ClientID
	}

	if len(cc.ClientGroup) > 0 {
		c.identity.ClientGroup = cc.ClientGroup
	}

	if len(cc.Username) > 0 {
		c.identity.Username = cc.Username
	}

	if len(cc.Password) > 0 {
		c.identity.Password = cc.Password
	}
}

// Descriptor ...
func (c *Connector) Descriptor() Descriptor {
	return c.descriptor
}

// Identity presented to the broker on connect
func (c *Connector) Identity() Identity {
	return c.identity
}

// ClientID ...
func (c *Connector) ClientID() string {
	return c.identity.ClientID
}

// ClientGroup ...
func (c *Connector) ClientGroup() string {
	return c.identity.ClientGroup
}

// Broker address the connector dials
func (c *Connector) Broker() (string, uint16) {
	return c.host, c.port
}

// Status ...
func (c *Connector) Status() Status {
	return Status(c.status.Load())
}

// State of underlying MQTT session
func (c *Connector) State() connection.State {
	return c.engine.State()
}

// Stats snapshot of traffic and session counters
func (c *Connector) Stats() metrics.Stats {
	return c.stats.Snapshot()
}

// Loop runs one iteration: reconnect when needed, then service the session.
// Reports true once per connector.loopInterval, on every call when it is zero.
func (c *Connector) Loop() bool {
	return c.LoopEvery(c.loopPeriod)
}

// LoopEvery runs one iteration as Loop does and reports whether interval passed
// since it last reported true. Non-positive interval always reports true.
func (c *Connector) LoopEvery(interval time.Duration) bool {
	c.loop()

	if interval <= 0 {
		return true
	}

	t := c.now()
	if c.lastTick.IsZero() || t.Sub(c.lastTick) > interval {
		c.lastTick = t
		return true
	}

	return false
}

func (c *Connector) loop() {
	if c.engine.Connected() {
		c.status.Store(int32(StatusConnected))
	} else {
		if c.Status() == StatusConnected {
			c.status.Store(int32(StatusDisconnected))
			c.stats.Sessions().OnDisconnected()
			c.log.Warnf("session lost: %s", c.engine.State())
			c.handler.OnDisconnect(c)
		}

		if !c.connect() {
			return
		}
	}

	if err := c.engine.Loop(); err != nil && errors.Cause(err) != connection.ErrNotConnected {
		c.log.Debugf("loop: %s", err.Error())
	}
}

func (c *Connector) connect() bool {
	pkt := packet.Connect{
		ClientID:     c.identity.ClientID,
		CleanSession: c.cleanSession,
		Will:         c.will,
	}

	if len(c.identity.Username) > 0 && len(c.identity.Password) > 0 {
		pkt.Username = []byte(c.identity.Username)
		pkt.Password = []byte(c.identity.Password)
	}

	if err := c.engine.Connect(pkt); err != nil {
		if c.engine.State().Rejected() {
			c.stats.Sessions().OnRejected()
		}

		c.log.Debugf("connect %s:%d: %s", c.host, c.port, err.Error())
		return false
	}

	c.status.Store(int32(StatusConnected))
	c.stats.Sessions().OnConnected()
	c.log.Infof("connected to %s:%d as %q", c.host, c.port, c.identity.ClientID)
	c.handler.OnConnect(c)

	return true
}

func (c *Connector) dispatch(topic string, payload []byte) {
	if err := c.sub.Decode(payload); err != nil {
		c.handler.OnUnknownMessage(c, topic, c.sub)
		return
	}

	c.handler.OnMessage(c, topic, c.sub)
}

// Subscribe to topic filter. Only QoS0 and QoS1 are accepted.
func (c *Connector) Subscribe(topic string, qos packet.QosType) (packet.IDType, error) {
	if c.Status() != StatusConnected {
		return 0, connection.ErrNotConnected
	}

	return c.engine.Subscribe(topic, qos)
}

// Unsubscribe from topic filter
func (c *Connector) Unsubscribe(topic string) (packet.IDType, error) {
	if c.Status() != StatusConnected {
		return 0, connection.ErrNotConnected
	}

	return c.engine.Unsubscribe(topic)
}

// Close ends the session gracefully. OnDisconnect is not invoked.
// Next Loop connects again.
func (c *Connector) Close() {
	if c.Status() == StatusConnected {
		c.stats.Sessions().OnDisconnected()
	}

	c.engine.Disconnect()
	c.status.Store(int32(StatusDisconnected))
}
