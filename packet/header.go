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
	"io"
)

// EncodeRemainingLength writes n into dst using MQTT variable length encoding
// and returns number of bytes written. n must be within [0, MaxRemainingLength].
func EncodeRemainingLength(dst []byte, n int) (int, error) {
	if n < 0 || n > MaxRemainingLength {
		return 0, ErrInvalidLength
	}

	size := RemainingLengthSize(n)
	if len(dst) < size {
		return size, ErrInsufficientBufferSize
	}

	i := 0
	for {
		digit := byte(n & 0x7F)
		n >>= 7
		if n > 0 {
			digit |= 0x80
		}
		dst[i] = digit
		i++

		if n == 0 {
			break
		}
	}

	return i, nil
}

// RemainingLengthSize returns number of bytes needed to encode n
func RemainingLengthSize(n int) int {
	i := 1
	for n >= 0x80 {
		n >>= 7
		i++
	}

	return i
}

// DecodeRemainingLength reads variable length integer one byte at a time.
// It returns decoded value and count of bytes consumed.
// If the fifth byte would be needed ErrMalformedLength is returned,
// errors from the reader are returned as is.
func DecodeRemainingLength(r io.ByteReader) (int, int, error) {
	var value int
	var shift uint

	for i := 0; ; i++ {
		if i == maxRemainingLengthBytes {
			return 0, i, ErrMalformedLength
		}

		b, err := r.ReadByte()
		if err != nil {
			return 0, i, err
		}

		value |= int(b&0x7F) << shift
		shift += 7

		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}
}

// BuildHeader writes fixed header for a packet whose variable header and payload
// of given length already sit at buf[MaxHeaderSize:].
// Length bytes are placed immediately before buf[MaxHeaderSize] and the header byte
// before them, so the packet is buf[MaxHeaderSize-n : MaxHeaderSize+length]
// where n is the returned header size.
func BuildHeader(buf []byte, header byte, length int) (int, error) {
	if len(buf) < MaxHeaderSize {
		return 0, ErrInsufficientBufferSize
	}

	var lenBuf [maxRemainingLengthBytes]byte

	llen, err := EncodeRemainingLength(lenBuf[:], length)
	if err != nil {
		return 0, err
	}

	buf[MaxHeaderSize-llen-1] = header
	copy(buf[MaxHeaderSize-llen:MaxHeaderSize], lenBuf[:llen])

	return llen + 1, nil
}
