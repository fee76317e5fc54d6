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
	"time"

	"go.uber.org/zap"

	"github.com/VolantMQ/edgeconnector/metrics"
)

// Option configures Engine
type Option func(*Engine) error

// SetOptions applies opts in order, stops at first failure
func (e *Engine) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}

	return nil
}

// KeepAlive keep alive period, zero disables pings
func KeepAlive(val time.Duration) Option {
	return func(e *Engine) error {
		if val < 0 || val/time.Second > 65535 {
			return errors.New("connection: keep alive out of range")
		}

		e.keepAlive = val.Truncate(time.Second)
		return nil
	}
}

// SocketTimeout bounds every blocking byte read and the wait for CONNACK
func SocketTimeout(val time.Duration) Option {
	return func(e *Engine) error {
		if val <= 0 {
			return errors.New("connection: socket timeout must be positive")
		}

		e.socketTimeout = val
		return nil
	}
}

// BufferSize capacity of the working buffer
func BufferSize(val int) Option {
	return func(e *Engine) error {
		return e.SetBufferSize(val)
	}
}

// OnPublish handler receiving inbound messages
func OnPublish(val Handler) Option {
	return func(e *Engine) error {
		e.handler = val
		return nil
	}
}

// RawSink receives payload bytes of every inbound PUBLISH as they are read,
// including those that do not fit the working buffer
func RawSink(val io.Writer) Option {
	return func(e *Engine) error {
		e.sink = val
		return nil
	}
}

// ReadTimeoutEnabled when false reads never wait for data to arrive
func ReadTimeoutEnabled(val bool) Option {
	return func(e *Engine) error {
		e.readTimeout = val
		return nil
	}
}

// Server broker address dialed when transport is not connected
func Server(host string, port uint16) Option {
	return func(e *Engine) error {
		e.SetServer(host, port)
		return nil
	}
}

// Log ...
func Log(val *zap.SugaredLogger) Option {
	return func(e *Engine) error {
		if val != nil {
			e.log = val
		}
		return nil
	}
}

// Metric packet counters
func Metric(val metrics.Packets) Option {
	return func(e *Engine) error {
		if val != nil {
			e.metric = val
		}
		return nil
	}
}

// Clock time source, used by tests
func Clock(val func() time.Time) Option {
	return func(e *Engine) error {
		if val == nil {
			return errors.New("connection: nil clock")
		}

		e.now = val
		return nil
	}
}
