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
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

var now = time.Now

// Envelope is the binary wrapper carried as PUBLISH payload:
//
//   [0xFF 0xA3] [version] [type] [u32 options length] [options]
//   type Value:  [u32 data length] [data]
//   other types: [data up to the end]
//
// Options are "key=value" records joined by CRLF.
// One envelope is meant to be reused per direction, call Reset before building a new one.
type Envelope struct {
	Version byte
	Type    Type

	options []byte
	data    []byte
}

// New allocates envelope in reset state
func New() *Envelope {
	m := &Envelope{
		options: make([]byte, 0, OptionsCapacity),
	}

	m.Reset()

	return m
}

// Reset version 1, type Value, no options, no payload
func (m *Envelope) Reset() {
	m.Version = Version
	m.Type = TypeValue

	if m.options == nil {
		m.options = make([]byte, 0, OptionsCapacity)
	}

	m.options = m.options[:0]
	m.data = nil
}

// Decode parses envelope from b. On success payload and options are copied out of b.
//
// When b is not an envelope the raw passthrough is applied: type Unknown,
// version 0, empty options and payload an exact copy of b. ErrNoMagic is returned
// when magic is missing and ErrMalformed when magic is present but the
// envelope is truncated; both leave b available through Data.
func (m *Envelope) Decode(b []byte) error {
	m.Reset()

	if len(b) < 2 || b[0] != magic0 || b[1] != magic1 {
		m.passthrough(b)
		return ErrNoMagic
	}

	if err := m.decode(b); err != nil {
		m.passthrough(b)
		return err
	}

	return nil
}

func (m *Envelope) decode(b []byte) error {
	if len(b) < fixedSize {
		return ErrMalformed
	}

	version := b[2]
	typ := Type(b[3])
	p := 4

	optLen := int(binary.BigEndian.Uint32(b[p:]))
	p += 4

	if optLen > OptionsCapacity || optLen > len(b)-p {
		return ErrMalformed
	}

	options := b[p : p+optLen]
	p += optLen

	var data []byte

	if typ == TypeValue {
		if len(b)-p < 4 {
			return ErrMalformed
		}

		dataLen := binary.BigEndian.Uint32(b[p:])
		p += 4

		if uint64(dataLen) > uint64(len(b)-p) {
			return ErrMalformed
		}

		data = b[p : p+int(dataLen)]
	} else {
		data = b[p:]
	}

	m.Version = version
	m.Type = typ
	m.options = append(m.options[:0], options...)
	m.data = append([]byte(nil), data...)

	return nil
}

func (m *Envelope) passthrough(b []byte) {
	m.Version = 0
	m.Type = TypeUnknown
	m.options = m.options[:0]
	m.data = append([]byte(nil), b...)
}

// EncodedSize number of bytes Encode writes
func (m *Envelope) EncodedSize() int {
	size := fixedSize + len(m.options) + len(m.data)
	if m.Type == TypeValue {
		size += 4
	}

	return size
}

// Encode writes envelope into buf and returns bytes written.
// Nothing is written when buf is too small.
func (m *Envelope) Encode(buf []byte) (int, error) {
	if m.EncodedSize() > len(buf) {
		return 0, ErrInsufficientBufferSize
	}

	buf[0] = magic0
	buf[1] = magic1
	buf[2] = m.Version
	buf[3] = byte(m.Type)
	p := 4

	binary.BigEndian.PutUint32(buf[p:], uint32(len(m.options)))
	p += 4
	p += copy(buf[p:], m.options)

	if m.Type == TypeValue {
		binary.BigEndian.PutUint32(buf[p:], uint32(len(m.data)))
		p += 4
	}

	p += copy(buf[p:], m.data)

	return p, nil
}

// MarshalBinary encodes into newly allocated slice
func (m *Envelope) MarshalBinary() ([]byte, error) {
	buf := make([]byte, m.EncodedSize())

	n, err := m.Encode(buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}

// Option value of the first record named name
func (m *Envelope) Option(name string) (string, bool) {
	for _, kv := range m.Options() {
		if kv.Key == name {
			return kv.Value, true
		}
	}

	return "", false
}

// Options all records in order, duplicates included.
// Record without '=' yields empty value.
func (m *Envelope) Options() []KV {
	if len(m.options) == 0 {
		return nil
	}

	records := strings.Split(string(m.options), "\r\n")
	kvs := make([]KV, 0, len(records))

	for _, r := range records {
		if len(r) == 0 {
			continue
		}

		kv := KV{Key: r}
		if i := strings.IndexByte(r, '='); i >= 0 {
			kv.Key = r[:i]
			kv.Value = r[i+1:]
		}

		kvs = append(kvs, kv)
	}

	return kvs
}

// OptionsLength size of options block
func (m *Envelope) OptionsLength() int {
	return len(m.options)
}

// SetOption appends record, existing records with the same name are kept.
// Neither name nor value is escaped.
func (m *Envelope) SetOption(name, value string) error {
	size := len(name) + 1 + len(value)
	if len(m.options) > 0 {
		size += 2
	}

	if len(m.options)+size > OptionsCapacity {
		return ErrOptionsFull
	}

	if len(m.options) > 0 {
		m.options = append(m.options, '\r', '\n')
	}

	m.options = append(m.options, name...)
	m.options = append(m.options, '=')
	m.options = append(m.options, value...)

	return nil
}

// SetLastModified stamps current local time
func (m *Envelope) SetLastModified() error {
	return m.SetOption(OptionLastModified, now().Format(LastModifiedLayout))
}

// SetLastModifiedValue stamps explicit value
func (m *Envelope) SetLastModifiedValue(v string) error {
	return m.SetOption(OptionLastModified, v)
}

// LastModified ...
func (m *Envelope) LastModified() (string, bool) {
	return m.Option(OptionLastModified)
}

// SetDataType free text MIME-like tag
func (m *Envelope) SetDataType(v string) error {
	return m.SetOption(OptionDataType, v)
}

// DataType ...
func (m *Envelope) DataType() (string, bool) {
	return m.Option(OptionDataType)
}

// Data payload, valid until next mutating call
func (m *Envelope) Data() []byte {
	return m.data
}

// Size of payload
func (m *Envelope) Size() int {
	return len(m.data)
}

// SetData replaces payload with copy of b
func (m *Envelope) SetData(b []byte) {
	m.data = append(make([]byte, 0, len(b)), b...)
}

// Resize drops payload and allocates n zero bytes
func (m *Envelope) Resize(n int) {
	if n < 0 {
		n = 0
	}

	m.data = make([]byte, n)
}

func (m *Envelope) setValue(s string) error {
	if m.Type != TypeValue {
		return ErrNotValue
	}

	m.data = make([]byte, len(s)+1)
	copy(m.data, s)

	return nil
}

// SetString stores s followed by NUL
func (m *Envelope) SetString(s string) error {
	return m.setValue(s)
}

// SetInt stores decimal text of v followed by NUL
func (m *Envelope) SetInt(v int64) error {
	return m.setValue(strconv.FormatInt(v, 10))
}

// SetFloat stores shortest decimal text of v followed by NUL
func (m *Envelope) SetFloat(v float64) error {
	return m.setValue(strconv.FormatFloat(v, 'f', -1, 64))
}

// SetBool stores "true" or "false" followed by NUL
func (m *Envelope) SetBool(v bool) error {
	return m.setValue(strconv.FormatBool(v))
}

// Text NUL-terminated text of Value payload, at most limit bytes.
// False when envelope is not a Value, payload has no terminator or limit is negative.
func (m *Envelope) Text(limit int) (string, bool) {
	if m.Type != TypeValue || m.data == nil || limit < 0 {
		return "", false
	}

	for p, c := range m.data {
		if c == 0 {
			if p > limit {
				p = limit
			}

			return string(m.data[:p]), true
		}
	}

	return "", false
}
