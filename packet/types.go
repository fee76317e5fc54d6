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

// ProtocolVersion describes versions implemented by this package
type ProtocolVersion byte

const (
	// ProtocolV311 protocol level of MQTT v3.1.1
	ProtocolV311 = ProtocolVersion(0x4)
)

// ProtocolName carried in the CONNECT variable header
const ProtocolName = "MQTT"

const (
	// MaxLPString maximum size of length-prefixed string
	MaxLPString = 65535

	// MaxHeaderSize is the size of the region reserved in front of every outbound
	// packet for the fixed header: one type byte plus up to four length bytes.
	MaxHeaderSize = 5

	// MaxRemainingLength is the largest value representable with four length bytes
	MaxRemainingLength = (256 * 1024 * 1024) - 1

	maxRemainingLengthBytes = 4
)
