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

// Error errors
type Error byte

// nolint: golint
const (
	// ErrInvalidQoS Invalid message QoS
	ErrInvalidQoS Error = iota
	// ErrInvalidLength Invalid message length
	ErrInvalidLength
	// ErrMalformedLength remaining length needs more than four bytes
	ErrMalformedLength
	// ErrInsufficientBufferSize Insufficient buffer size
	ErrInsufficientBufferSize
	// ErrInsufficientDataSize
	ErrInsufficientDataSize
	// ErrInvalidTopic Topic is empty
	ErrInvalidTopic
	// ErrInvalidLPStringSize LP string size is bigger than expected
	ErrInvalidLPStringSize
)

// Error returns the corresponding error string for the packet error
func (e Error) Error() string {
	switch e {
	case ErrInvalidQoS:
		return "Invalid message QoS"
	case ErrInvalidLength:
		return "Invalid message length"
	case ErrMalformedLength:
		return "Malformed remaining length"
	case ErrInsufficientBufferSize:
		return "Insufficient buffer size"
	case ErrInsufficientDataSize:
		return "Insufficient data size"
	case ErrInvalidTopic:
		return "Invalid topic name"
	case ErrInvalidLPStringSize:
		return "Invalid LP string size"
	}

	return "Unknown error"
}
