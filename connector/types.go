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
	"strconv"

	"github.com/VolantMQ/edgeconnector/message"
)

// DefaultPort of the edge broker
const DefaultPort uint16 = 16300

// Data types stamped by the publish helpers
const (
	DataTypeJSON = "application/json"
	DataTypeText = "text/plain"
)

// nolint: golint
var (
	ErrNoBroker       = errors.New("connector: neither host nor gateway configured")
	ErrInvalidGateway = errors.New("connector: gateway is not an IPv4 address")
)

// Status of the connector as seen by the application
type Status int32

// nolint: golint
const (
	StatusDisconnected Status = iota
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnected:
		return "connected"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Descriptor identifies the device
type Descriptor struct {
	Name         string
	Vendor       string
	Model        string
	SerialNumber string
	AccessCode   string
}

// Identity session identity presented to the broker
type Identity struct {
	ClientGroup string
	ClientID    string
	Username    string
	Password    string
}

// Handler receives connector events. All callbacks run on the goroutine calling Loop.
//
// Envelopes passed to OnMessage and OnUnknownMessage are reused by the
// connector and valid only until the callback returns.
type Handler interface {
	OnConnect(c *Connector)
	OnDisconnect(c *Connector)
	OnMessage(c *Connector, topic string, m *message.Envelope)
	OnUnknownMessage(c *Connector, topic string, m *message.Envelope)
}

// BaseHandler ignores every event, embed it to implement part of Handler
type BaseHandler struct{}

var _ Handler = BaseHandler{}

// OnConnect ...
func (BaseHandler) OnConnect(*Connector) {}

// OnDisconnect ...
func (BaseHandler) OnDisconnect(*Connector) {}

// OnMessage ...
func (BaseHandler) OnMessage(*Connector, string, *message.Envelope) {}

// OnUnknownMessage ...
func (BaseHandler) OnUnknownMessage(*Connector, string, *message.Envelope) {}
