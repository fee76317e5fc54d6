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
	"errors"
	"time"

	"github.com/VolantMQ/edgeconnector/configuration"
	"go.uber.org/zap"
)

// Transport is a byte stream to the broker.
// Implementations are driven from a single goroutine except for Connected
// which may be queried concurrently.
type Transport interface {
	// Connect dials the broker, any previous connection is closed first
	Connect(host string, port uint16) error

	// Write sends b as is, returns number of bytes accepted
	Write(b []byte) (int, error)

	// ReadByte blocks until a byte arrives or the connection fails
	ReadByte() (byte, error)

	// Available number of bytes that can be read without blocking
	Available() int

	// Connected reports whether connection is believed to be up
	Connected() bool

	// Stop closes connection
	Stop()

	// Flush pushes buffered outbound bytes
	Flush() error
}

// ErrNotConnected returned on I/O attempt over stopped transport
var ErrNotConnected = errors.New("transport: not connected")

// Config of outbound transport
type Config struct {
	// Kind tcp or ws
	Kind string

	// Path of websocket endpoint
	Path string

	// DialTimeout bounds connection establishment
	DialTimeout time.Duration

	// PollInterval read deadline used while probing for available data
	PollInterval time.Duration

	Log *zap.SugaredLogger
}

const (
	defaultDialTimeout  = 5 * time.Second
	defaultPollInterval = time.Millisecond
	defaultPath         = "/mqtt"
)

func (c *Config) normalize() {
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}

	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}

	if len(c.Path) == 0 {
		c.Path = defaultPath
	}

	if c.Log == nil {
		c.Log = configuration.GetLogger().Named("transport")
	}
}

// New allocates transport of the configured kind
func New(c Config) (Transport, error) {
	switch c.Kind {
	case "", "tcp":
		return NewTCP(c), nil
	case "ws":
		return NewWebSocket(c), nil
	default:
		return nil, errors.New("transport: unsupported kind " + c.Kind)
	}
}
