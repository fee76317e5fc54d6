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

// ReadLPBytes read length prefixed bytes
func ReadLPBytes(buf []byte) ([]byte, int, error) {
	if len(buf) < 2 {
		return nil, 0, ErrInsufficientDataSize
	}

	var n int
	total := 0

	// Read length prefix
	n = int(binary.BigEndian.Uint16(buf))
	total += 2

	// Check for malformed length-prefixed field
	// if remaining space is less than length-prefixed size the packet seems to be broken
	if len(buf[total:]) < n {
		return nil, total, ErrInsufficientDataSize
	}

	total += n

	return buf[2:total], total, nil
}

// WriteLPBytes write length prefixed bytes
func WriteLPBytes(buf []byte, b []byte) (int, error) {
	total, n := 0, len(b)

	if n > MaxLPString {
		return 0, ErrInvalidLPStringSize
	}

	if len(buf) < 2+n {
		return 2 + n, ErrInsufficientBufferSize
	}

	binary.BigEndian.PutUint16(buf, uint16(n))
	total += 2

	copy(buf[total:], b)
	total += n

	return total, nil
}

// WriteLPString write length prefixed string, no terminator
func WriteLPString(buf []byte, s string) (int, error) {
	n := len(s)

	if n > MaxLPString {
		return 0, ErrInvalidLPStringSize
	}

	if len(buf) < 2+n {
		return 2 + n, ErrInsufficientBufferSize
	}

	binary.BigEndian.PutUint16(buf, uint16(n))
	copy(buf[2:], s)

	return 2 + n, nil
}

// WritePacketID writes big-endian packet identifier
func WritePacketID(buf []byte, id IDType) (int, error) {
	if len(buf) < 2 {
		return 2, ErrInsufficientBufferSize
	}

	binary.BigEndian.PutUint16(buf, uint16(id))

	return 2, nil
}

// ReadPacketID reads big-endian packet identifier
func ReadPacketID(buf []byte) (IDType, error) {
	if len(buf) < 2 {
		return 0, ErrInsufficientDataSize
	}

	return IDType(binary.BigEndian.Uint16(buf)), nil
}
