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

// QosType QoS type
type QosType byte

const (
	// QoS0 At most once delivery
	// The message is delivered according to the capabilities of the underlying network.
	// No response is sent by the receiver and no retry is performed by the sender. The
	// message arrives at the receiver either once or not at all.
	QoS0 QosType = iota

	// QoS1 At least once delivery
	// This quality of service ensures that the message arrives at the receiver at least once.
	// A QoS 1 PUBLISH Packet has a Packet Identifier in its variable header and is acknowledged
	// by a PUBACK Packet.
	QoS1

	// QoS2 Exactly once delivery. Recognised on the wire, never negotiated by this client.
	QoS2
)

const (
	offsetPublishFlagQoS  byte = 0x01
	maskPublishFlagRetain byte = 0x01
	maskPublishFlagQoS    byte = 0x06
	maskPublishFlagDup    byte = 0x08
)

// IsValid checks the QoS value to see if it's valid. Valid QoS are QoS0,
// QoS1, and QoS2.
func (c QosType) IsValid() bool {
	return c == QoS0 || c == QoS1 || c == QoS2
}

// Desc get string representation of QoS value
func (c QosType) Desc() string {
	switch c {
	case QoS0:
		return "QoS0"
	case QoS1:
		return "QoS1"
	case QoS2:
		return "QoS2"
	default:
		return "Invalid value"
	}
}

// PublishHeader builds the fixed header byte of a PUBLISH packet
func PublishHeader(qos QosType, retain bool, dup bool) byte {
	h := PUBLISH.Header() | (byte(qos)<<offsetPublishFlagQoS)&maskPublishFlagQoS

	if retain {
		h |= maskPublishFlagRetain
	}

	if dup {
		h |= maskPublishFlagDup
	}

	return h
}

// PublishQoS returns QoS encoded in the PUBLISH fixed header
func PublishQoS(header byte) QosType {
	return QosType((header & maskPublishFlagQoS) >> offsetPublishFlagQoS)
}
