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

const maskConnAckSessionPresent byte = 0x01

// Control returns two-byte packet without variable header: PINGREQ, PINGRESP, DISCONNECT
func Control(t Type) [2]byte {
	return [2]byte{t.Header(), 0}
}

// Ack returns four-byte acknowledgement carrying packet id, e.g. PUBACK
func Ack(t Type, id IDType) [4]byte {
	return [4]byte{t.Header(), 2, byte(id >> 8), byte(id)}
}

// DecodeConnAck parses CONNACK variable header
func DecodeConnAck(src []byte) (bool, ReasonCode, error) {
	if len(src) < 2 {
		return false, 0, ErrInsufficientDataSize
	}

	return src[0]&maskConnAckSessionPresent != 0, ReasonCode(src[1]), nil
}
