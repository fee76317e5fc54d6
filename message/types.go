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
package message

import (
	"errors"
)

// Type of envelope payload
type Type byte

// nolint: golint
const (
	TypeUnknown Type = iota
	TypeValue
	TypeMap
)

// String ...
func (t Type) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeValue:
		return "value"
	case TypeMap:
		return "map"
	default:
		return "invalid"
	}
}

// nolint: golint
const (
	// Version written by Reset
	Version byte = 1

	// OptionsCapacity maximum size of options block
	OptionsCapacity = 1024

	// fixed part: magic, version, type, options length
	fixedSize = 2 + 1 + 1 + 4

	magic0 byte = 0xFF
	magic1 byte = 0xA3
)

// Well known option names
const (
	OptionLastModified = "last-modified"
	OptionDataType     = "data-type"
)

// LastModifiedLayout time layout of last-modified option
const LastModifiedLayout = "2006-01-02 15:04:05"

// DataTypeMsgpack data-type of Map envelopes
const DataTypeMsgpack = "application/msgpack"

// nolint: golint
var (
	ErrNoMagic                = errors.New("message: no envelope magic")
	ErrMalformed              = errors.New("message: malformed envelope")
	ErrInsufficientBufferSize = errors.New("message: insufficient buffer size")
	ErrOptionsFull            = errors.New("message: options block full")
	ErrNotValue               = errors.New("message: envelope type is not value")
	ErrNotMap                 = errors.New("message: envelope type is not map")
)

// KV single option record
type KV struct {
	Key   string
	Value string
}
