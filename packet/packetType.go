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

// Type of control packet, high nibble of the fixed header
type Type byte

// IDType as per [MQTT-2.3.1]
type IDType uint16

const (
	// RESERVED is a reserved value and should be considered an invalid message type
	RESERVED Type = iota

	// CONNECT Client request to connect to Server
	CONNECT

	// CONNACK Accept acknowledgement
	CONNACK

	// PUBLISH Client to Server, or Server to Client. Publish message.
	PUBLISH

	// PUBACK Publish acknowledgment for QoS 1 messages.
	PUBACK

	// PUBREC Publish received for QoS 2 messages. Never sent by this client.
	PUBREC

	// PUBREL Publish release for QoS 2 messages. Never sent by this client.
	PUBREL

	// PUBCOMP Publish complete for QoS 2 messages. Never sent by this client.
	PUBCOMP

	// SUBSCRIBE Client to Server. Client subscribe request.
	SUBSCRIBE

	// SUBACK Server to Client. Subscribe acknowledgement.
	SUBACK

	// UNSUBSCRIBE Client to Server. Unsubscribe request.
	UNSUBSCRIBE

	// UNSUBACK Server to Client. Unsubscribe acknowlegment.
	UNSUBACK

	// PINGREQ PING request.
	PINGREQ

	// PINGRESP PING response.
	PINGRESP

	// DISCONNECT Client to Server. Client is disconnecting.
	DISCONNECT

	// AUTH is not part of v3.1.1 and considered invalid by this package
	AUTH
)

const (
	offsetPacketType byte = 0x04
	maskPacketType   byte = 0xF0
)

var typeName = [AUTH + 1]string{
	"RESERVED",
	"CONNECT",
	"CONNACK",
	"PUBLISH",
	"PUBACK",
	"PUBREC",
	"PUBREL",
	"PUBCOMP",
	"SUBSCRIBE",
	"SUBACK",
	"UNSUBSCRIBE",
	"UNSUBACK",
	"PINGREQ",
	"PINGRESP",
	"DISCONNECT",
	"AUTH",
}

var typeDefaultFlags = [AUTH + 1]byte{
	0, // RESERVED
	0, // CONNECT
	0, // CONNACK
	0, // PUBLISH
	0, // PUBACK
	0, // PUBREC
	2, // PUBREL
	0, // PUBCOMP
	2, // SUBSCRIBE
	0, // SUBACK
	2, // UNSUBSCRIBE
	0, // UNSUBACK
	0, // PINGREQ
	0, // PINGRESP
	0, // DISCONNECT
	0, // AUTH
}

// Name of the packet type as written in MQTT documents
func (t Type) Name() string {
	if t > AUTH {
		return "UNKNOWN"
	}

	return typeName[t]
}

func (t Type) String() string {
	return t.Name()
}

// DefaultFlags reserved flag nibble every packet of type t carries, PUBLISH flags aside
func (t Type) DefaultFlags() byte {
	if t > AUTH {
		return 0
	}

	return typeDefaultFlags[t]
}

// Header returns the fixed header byte for the type combined with its default flags
func (t Type) Header() byte {
	return byte(t)<<offsetPacketType | t.DefaultFlags()
}

// TypeOf extracts the packet type from a fixed header byte
func TypeOf(header byte) Type {
	return Type((header & maskPacketType) >> offsetPacketType)
}
