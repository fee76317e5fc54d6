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

import (
	"encoding/binary"
)

const (
	offsetConnFlagWillQoS    byte = 0x03
	offsetConnFlagWillRetain byte = 0x05
)

const (
	maskConnFlagUsername byte = 0x80
	maskConnFlagPassword byte = 0x40
	maskConnFlagWillQos  byte = 0x18
	maskConnFlagWill     byte = 0x04
	maskConnFlagClean    byte = 0x02
)

// connectFixedSize protocol name LP string, level, flags and keep alive
const connectFixedSize = 2 + len(ProtocolName) + 1 + 1 + 2

// Will message published by the server when the client goes away ungracefully
type Will struct {
	Topic   string
	Message []byte
	QoS     QosType
	Retain  bool
}

// Connect describes the variable header and payload of a CONNECT packet.
// Nil Username means no user name, nil Password means no password,
// password is never sent without user name.
type Connect struct {
	ClientID     string
	Username     []byte
	Password     []byte
	Will         *Will
	CleanSession bool
	KeepAlive    uint16
}

// Flags returns the connect flags byte [MQTT-3.1.2.3]
func (c *Connect) Flags() byte {
	var v byte

	if c.Will != nil {
		v = maskConnFlagWill | (byte(c.Will.QoS)<<offsetConnFlagWillQoS)&maskConnFlagWillQos
		if c.Will.Retain {
			v |= 1 << offsetConnFlagWillRetain
		}
	}

	if c.CleanSession {
		v |= maskConnFlagClean
	}

	if c.Username != nil {
		v |= maskConnFlagUsername

		if c.Password != nil {
			v |= maskConnFlagPassword
		}
	}

	return v
}

// Size returns size of variable header and payload
func (c *Connect) Size() int {
	total := connectFixedSize + 2 + len(c.ClientID)

	if c.Will != nil {
		total += 2 + len(c.Will.Topic) + 2 + len(c.Will.Message)
	}

	if c.Username != nil {
		total += 2 + len(c.Username)

		if c.Password != nil {
			total += 2 + len(c.Password)
		}
	}

	return total
}

// Encode writes variable header and payload into buf.
// Remaining capacity is checked before every string is appended and
// ErrInsufficientBufferSize returned on would-be overflow.
func (c *Connect) Encode(buf []byte) (int, error) {
	if c.Will != nil && c.Will.QoS > QoS2 {
		return 0, ErrInvalidQoS
	}

	if len(buf) < connectFixedSize {
		return 0, ErrInsufficientBufferSize
	}

	offset := 0

	n, _ := WriteLPString(buf[offset:], ProtocolName)
	offset += n

	buf[offset] = byte(ProtocolV311)
	offset++

	buf[offset] = c.Flags()
	offset++

	binary.BigEndian.PutUint16(buf[offset:], c.KeepAlive)
	offset += 2

	var err error

	if n, err = WriteLPString(buf[offset:], c.ClientID); err != nil {
		return offset, err
	}
	offset += n

	if c.Will != nil {
		if n, err = WriteLPString(buf[offset:], c.Will.Topic); err != nil {
			return offset, err
		}
		offset += n

		if n, err = WriteLPBytes(buf[offset:], c.Will.Message); err != nil {
			return offset, err
		}
		offset += n
	}

	if c.Username != nil {
		if n, err = WriteLPBytes(buf[offset:], c.Username); err != nil {
			return offset, err
		}
		offset += n

		if c.Password != nil {
			if n, err = WriteLPBytes(buf[offset:], c.Password); err != nil {
				return offset, err
			}
			offset += n
		}
	}

	return offset, nil
}
