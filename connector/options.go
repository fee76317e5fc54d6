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
	"time"

	"go.uber.org/zap"

	"github.com/VolantMQ/edgeconnector/connection"
	"github.com/VolantMQ/edgeconnector/metrics"
	"github.com/VolantMQ/edgeconnector/packet"
	"github.com/VolantMQ/edgeconnector/transport"
)

// Option configures Connector
type Option func(*Connector) error

// WithHandler event receiver
func WithHandler(val Handler) Option {
	return func(c *Connector) error {
		if val == nil {
			return errors.New("connector: nil handler")
		}

		c.handler = val
		return nil
	}
}

// WithTransport overrides transport built from configuration
func WithTransport(val transport.Transport) Option {
	return func(c *Connector) error {
		c.conn = val
		return nil
	}
}

// WithEngineOptions applied to the MQTT engine after configuration derived ones
func WithEngineOptions(val ...connection.Option) Option {
	return func(c *Connector) error {
		c.engineOpts = append(c.engineOpts, val...)
		return nil
	}
}

// WithWill last will sent on every connect
func WithWill(val *packet.Will) Option {
	return func(c *Connector) error {
		if val != nil && !val.QoS.IsValid() {
			return packet.ErrInvalidQoS
		}

		c.will = val
		return nil
	}
}

// WithMetrics counters, defaults to a private set
func WithMetrics(val metrics.Informer) Option {
	return func(c *Connector) error {
		if val != nil {
			c.stats = val
		}
		return nil
	}
}

// WithLog ...
func WithLog(val *zap.SugaredLogger) Option {
	return func(c *Connector) error {
		if val != nil {
			c.log = val
		}
		return nil
	}
}

// WithClock time source of LoopEvery
func WithClock(val func() time.Time) Option {
	return func(c *Connector) error {
		if val == nil {
			return errors.New("connector: nil clock")
		}

		c.now = val
		return nil
	}
}
