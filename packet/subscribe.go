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

// EncodeSubscribe writes variable header and payload of a single-topic SUBSCRIBE
func EncodeSubscribe(buf []byte, id IDType, topic string, qos QosType) (int, error) {
	if len(topic) == 0 {
		return 0, ErrInvalidTopic
	}

	if !qos.IsValid() {
		return 0, ErrInvalidQoS
	}

	offset, err := EncodeUnsubscribe(buf, id, topic)
	if err != nil {
		return offset, err
	}

	if len(buf) < offset+1 {
		return offset + 1, ErrInsufficientBufferSize
	}

	buf[offset] = byte(qos)
	offset++

	return offset, nil
}

// EncodeUnsubscribe writes variable header and payload of a single-topic UNSUBSCRIBE
func EncodeUnsubscribe(buf []byte, id IDType, topic string) (int, error) {
	if len(topic) == 0 {
		return 0, ErrInvalidTopic
	}

	offset, err := WritePacketID(buf, id)
	if err != nil {
		return offset, err
	}

	n, err := WriteLPString(buf[offset:], topic)
	if err != nil {
		return offset + n, err
	}
	offset += n

	return offset, nil
}
