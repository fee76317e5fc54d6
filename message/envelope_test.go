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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResetState(t *testing.T) {
	m := New()

	require.Equal(t, Version, m.Version)
	require.Equal(t, TypeValue, m.Type)
	require.Equal(t, 0, m.OptionsLength())
	require.Nil(t, m.Data())
	require.Equal(t, 0, m.Size())

	require.NoError(t, m.SetOption("a", "b"))
	m.SetData([]byte{1})
	m.Type = TypeMap
	m.Reset()

	require.Equal(t, TypeValue, m.Type)
	require.Equal(t, 0, m.OptionsLength())
	require.Equal(t, 0, m.Size())
}

func TestEncodeValueLayout(t *testing.T) {
	m := New()
	require.NoError(t, m.SetDataType("text/plain"))
	require.NoError(t, m.SetString("hi"))

	b, err := m.MarshalBinary()
	require.NoError(t, err)

	opts := "data-type=text/plain"

	expected := []byte{0xFF, 0xA3, 1, byte(TypeValue), 0, 0, 0, byte(len(opts))}
	expected = append(expected, opts...)
	expected = append(expected, 0, 0, 0, 3, 'h', 'i', 0)

	require.Equal(t, expected, b)
	require.Equal(t, len(expected), m.EncodedSize())
}

func TestEncodeRoundTrip(t *testing.T) {
	m := New()
	require.NoError(t, m.SetLastModifiedValue("2024-01-02 03:04:05"))
	require.NoError(t, m.SetDataType("application/octet-stream"))
	m.SetData([]byte{0, 1, 2, 0xff})

	buf := make([]byte, 256)
	n, err := m.Encode(buf)
	require.NoError(t, err)
	require.Equal(t, m.EncodedSize(), n)

	d := New()
	require.NoError(t, d.Decode(buf[:n]))
	require.Equal(t, byte(1), d.Version)
	require.Equal(t, TypeValue, d.Type)
	require.Equal(t, []byte{0, 1, 2, 0xff}, d.Data())

	v, ok := d.LastModified()
	require.True(t, ok)
	require.Equal(t, "2024-01-02 03:04:05", v)

	v, ok = d.DataType()
	require.True(t, ok)
	require.Equal(t, "application/octet-stream", v)

	// decoded payload does not alias the input
	buf[n-1] = 0
	require.Equal(t, byte(0xff), d.Data()[3])
}

func TestEncodeInsufficientBuffer(t *testing.T) {
	m := New()
	require.NoError(t, m.SetString("payload"))

	buf := make([]byte, m.EncodedSize()-1)
	for i := range buf {
		buf[i] = 0x55
	}

	n, err := m.Encode(buf)
	require.Equal(t, ErrInsufficientBufferSize, err)
	require.Equal(t, 0, n)

	for _, c := range buf {
		require.Equal(t, byte(0x55), c)
	}
}

func TestDecodeMapTakesRemainder(t *testing.T) {
	b := []byte{0xFF, 0xA3, 1, byte(TypeMap), 0, 0, 0, 0, 'x', 'y', 'z'}

	m := New()
	require.NoError(t, m.Decode(b))
	require.Equal(t, TypeMap, m.Type)
	require.Equal(t, []byte("xyz"), m.Data())

	m.Reset()
	m.Type = TypeMap
	m.SetData([]byte("xyz"))

	out, err := m.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, b, out)
}

func TestDecodeRawPassthrough(t *testing.T) {
	raw := []byte(`{"temp":21}`)

	m := New()
	require.NoError(t, m.SetOption("stale", "1"))

	err := m.Decode(raw)
	require.Equal(t, ErrNoMagic, err)
	require.Equal(t, byte(0), m.Version)
	require.Equal(t, TypeUnknown, m.Type)
	require.Equal(t, 0, m.OptionsLength())
	require.Equal(t, raw, m.Data())

	raw[0] = '['
	require.Equal(t, byte('{'), m.Data()[0])

	require.Equal(t, ErrNoMagic, m.Decode([]byte{0xFF}))
	require.Equal(t, []byte{0xFF}, m.Data())

	require.Equal(t, ErrNoMagic, m.Decode(nil))
	require.Equal(t, 0, m.Size())
}

func TestDecodeMalformed(t *testing.T) {
	valid := New()
	require.NoError(t, valid.SetOption("k", "v"))
	require.NoError(t, valid.SetString("abc"))

	b, err := valid.MarshalBinary()
	require.NoError(t, err)

	m := New()

	for _, cut := range []int{2, 7, 8, 10, 12, len(b) - 1} {
		err = m.Decode(b[:cut])
		require.Equal(t, ErrMalformed, err, "cut %d", cut)
		require.Equal(t, TypeUnknown, m.Type)
		require.Equal(t, b[:cut], m.Data())
	}

	huge := []byte{0xFF, 0xA3, 1, byte(TypeMap), 0, 0, 0, 0}
	binary.BigEndian.PutUint32(huge[4:], OptionsCapacity+1)
	huge = append(huge, make([]byte, OptionsCapacity+1)...)

	require.Equal(t, ErrMalformed, m.Decode(huge))
}

func TestOptions(t *testing.T) {
	m := New()

	_, ok := m.Option("a")
	require.False(t, ok)
	require.Nil(t, m.Options())

	require.NoError(t, m.SetOption("a", "1"))
	require.NoError(t, m.SetOption("b", "x=y"))
	require.NoError(t, m.SetOption("a", "2"))

	require.Equal(t, len("a=1\r\nb=x=y\r\na=2"), m.OptionsLength())

	v, ok := m.Option("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	v, ok = m.Option("b")
	require.True(t, ok)
	require.Equal(t, "x=y", v)

	require.Equal(t, []KV{{"a", "1"}, {"b", "x=y"}, {"a", "2"}}, m.Options())
}

func TestOptionsWithoutSeparator(t *testing.T) {
	opts := "flag\r\nk=v"
	b := []byte{0xFF, 0xA3, 1, byte(TypeMap), 0, 0, 0, byte(len(opts))}
	b = append(b, opts...)

	m := New()
	require.NoError(t, m.Decode(b))
	require.Equal(t, []KV{{"flag", ""}, {"k", "v"}}, m.Options())
	require.Equal(t, 0, m.Size())
}

func TestOptionsCapacity(t *testing.T) {
	m := New()

	long := make([]byte, OptionsCapacity-2)
	for i := range long {
		long[i] = 'v'
	}

	require.NoError(t, m.SetOption("k", string(long)))
	require.Equal(t, OptionsCapacity, m.OptionsLength())

	require.Equal(t, ErrOptionsFull, m.SetOption("a", ""))
	require.Equal(t, OptionsCapacity, m.OptionsLength())

	m.Reset()
	require.Equal(t, ErrOptionsFull, m.SetOption("k", string(long)+"v"))
	require.Equal(t, 0, m.OptionsLength())
}

func TestSetLastModified(t *testing.T) {
	defer func(f func() time.Time) { now = f }(now)

	now = func() time.Time {
		return time.Date(2023, 7, 9, 8, 5, 3, 0, time.Local)
	}

	m := New()
	require.NoError(t, m.SetLastModified())

	v, ok := m.LastModified()
	require.True(t, ok)
	require.Equal(t, "2023-07-09 08:05:03", v)
}

func TestTypedSetters(t *testing.T) {
	m := New()

	require.NoError(t, m.SetInt(-42))
	require.Equal(t, []byte("-42\x00"), m.Data())

	require.NoError(t, m.SetFloat(1.25))
	require.Equal(t, []byte("1.25\x00"), m.Data())

	require.NoError(t, m.SetBool(true))
	require.Equal(t, []byte("true\x00"), m.Data())

	require.NoError(t, m.SetString(""))
	require.Equal(t, []byte{0}, m.Data())

	m.Type = TypeMap
	require.Equal(t, ErrNotValue, m.SetString("x"))
	require.Equal(t, ErrNotValue, m.SetInt(1))
	require.Equal(t, ErrNotValue, m.SetFloat(1))
	require.Equal(t, ErrNotValue, m.SetBool(false))
}

func TestText(t *testing.T) {
	m := New()
	require.NoError(t, m.SetString("hello"))

	s, ok := m.Text(64)
	require.True(t, ok)
	require.Equal(t, "hello", s)

	s, ok = m.Text(3)
	require.True(t, ok)
	require.Equal(t, "hel", s)

	s, ok = m.Text(0)
	require.True(t, ok)
	require.Equal(t, "", s)

	s, ok = m.Text(-1)
	require.False(t, ok)
	require.Equal(t, "", s)

	m.SetData([]byte("no terminator"))
	_, ok = m.Text(64)
	require.False(t, ok)

	m.Reset()
	_, ok = m.Text(64)
	require.False(t, ok)

	m.Type = TypeMap
	m.SetData([]byte("a\x00"))
	_, ok = m.Text(64)
	require.False(t, ok)
}

func TestResize(t *testing.T) {
	m := New()
	m.SetData([]byte{1, 2, 3})

	m.Resize(5)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, m.Data())

	m.Resize(0)
	require.Equal(t, 0, m.Size())
}

func TestSetDataCopies(t *testing.T) {
	src := []byte{1, 2, 3}

	m := New()
	m.SetData(src)
	src[0] = 9

	require.Equal(t, []byte{1, 2, 3}, m.Data())
}

func TestMapPayload(t *testing.T) {
	m := New()
	require.NoError(t, m.SetMap(map[string]interface{}{
		"name":  "sensor",
		"count": 3,
	}))
	require.Equal(t, TypeMap, m.Type)

	dt, ok := m.DataType()
	require.True(t, ok)
	require.Equal(t, DataTypeMsgpack, dt)

	b, err := m.MarshalBinary()
	require.NoError(t, err)

	d := New()
	require.NoError(t, d.Decode(b))

	v, err := d.Map()
	require.NoError(t, err)
	require.Equal(t, "sensor", v["name"])
	require.EqualValues(t, 3, v["count"])

	d.Reset()
	_, err = d.Map()
	require.Equal(t, ErrNotMap, err)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "unknown", TypeUnknown.String())
	require.Equal(t, "value", TypeValue.String())
	require.Equal(t, "map", TypeMap.String())
	require.Equal(t, "invalid", Type(7).String())
}
