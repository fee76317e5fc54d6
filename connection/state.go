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
	"strconv"

	"github.com/VolantMQ/edgeconnector/packet"
)

// State of the MQTT session.
// Positive values mirror CONNACK refusal codes.
type State int8

// nolint: golint
const (
	StateConnectionTimeout State = -4
	StateConnectionLost    State = -3
	StateConnectFailed     State = -2
	StateDisconnected      State = -1
	StateConnected         State = 0
	StateBadProtocol       State = State(packet.CodeRefusedUnacceptableProtocolVersion)
	StateBadClientID       State = State(packet.CodeRefusedIdentifierRejected)
	StateUnavailable       State = State(packet.CodeRefusedServerUnavailable)
	StateBadCredentials    State = State(packet.CodeRefusedBadUsernameOrPassword)
	StateUnauthorized      State = State(packet.CodeRefusedNotAuthorized)
)

var stateName = map[State]string{
	StateConnectionTimeout: "connection timeout",
	StateConnectionLost:    "connection lost",
	StateConnectFailed:     "connect failed",
	StateDisconnected:      "disconnected",
	StateConnected:         "connected",
	StateBadProtocol:       "rejected: bad protocol",
	StateBadClientID:       "rejected: bad client id",
	StateUnavailable:       "rejected: server unavailable",
	StateBadCredentials:    "rejected: bad credentials",
	StateUnauthorized:      "rejected: unauthorized",
}

func (s State) String() string {
	if n, ok := stateName[s]; ok {
		return n
	}

	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Rejected reports whether broker refused the connection
func (s State) Rejected() bool {
	return s > StateConnected
}
