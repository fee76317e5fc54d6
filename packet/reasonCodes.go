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

package packet

// ReasonCode contains v3.1.1 CONNACK return codes
type ReasonCode byte

// nolint: golint
const (
	CodeSuccess                            ReasonCode = 0x00
	CodeRefusedUnacceptableProtocolVersion ReasonCode = 0x01
	CodeRefusedIdentifierRejected          ReasonCode = 0x02
	CodeRefusedServerUnavailable           ReasonCode = 0x03
	CodeRefusedBadUsernameOrPassword       ReasonCode = 0x04
	CodeRefusedNotAuthorized               ReasonCode = 0x05
)

var connAckDesc = map[ReasonCode]string{
	CodeSuccess:                            "The Connection is accepted",
	CodeRefusedUnacceptableProtocolVersion: "The Server does not support the level of the MQTT protocol requested by the Client",
	CodeRefusedIdentifierRejected:          "The Client identifier is not allowed",
	CodeRefusedServerUnavailable:           "Server refused connection",
	CodeRefusedBadUsernameOrPassword:       "The data in the user name or password is malformed",
	CodeRefusedNotAuthorized:               "The Client is not authorized to connect",
}

// IsValid reports whether the code is a v3.1.1 CONNACK return code
func (c ReasonCode) IsValid() bool {
	_, ok := connAckDesc[c]
	return ok
}

// Desc returns description of the return code
func (c ReasonCode) Desc() string {
	if d, ok := connAckDesc[c]; ok {
		return d
	}

	return "Unknown return code"
}

// Error returns the description of the return code
func (c ReasonCode) Error() string {
	return c.Desc()
}
