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
package connection

import (
	"encoding/binary"
	"errors"
	"runtime"

	pkgerrors "github.com/pkg/errors"

	"github.com/VolantMQ/edgeconnector/packet"
)

var errReadTimeout = errors.New("connection: read timeout")

// byteReader feeds the remaining length decoder from the engine
type byteReader struct {
	e *Engine
}

func (r byteReader) ReadByte() (byte, error) {
	b, ok := r.e.readByte()
	if !ok {
		return 0, errReadTimeout
	}

	return b, nil
}

// readByte waits up to socket timeout for next byte unless read timeout is disabled
func (e *Engine) readByte() (byte, bool) {
	if e.readTimeout {
		start := e.now()
		for e.conn.Available() == 0 {
			if !e.conn.Connected() {
				return 0, false
			}

			runtime.Gosched()

			if e.now().Sub(start) >= e.socketTimeout {
				return 0, false
			}
		}
	} else if e.conn.Available() == 0 {
		return 0, false
	}

	b, err := e.conn.ReadByte()
	if err != nil {
		return 0, false
	}

	return b, true
}

// readPacket reads one packet into working buffer starting at offset 0.
// Returns number of bytes stored and count of remaining length bytes.
// Zero length means no packet: nothing arrived in time, or packet did not fit
// the buffer and no raw sink is registered.
// Malformed remaining length closes transport and returns ErrProtocol.
func (e *Engine) readPacket() (int, int, error) {
	buf := e.buf

	h, ok := e.readByte()
	if !ok {
		return 0, 0, nil
	}

	buf[0] = h

	isPublish := packet.TypeOf(h) == packet.PUBLISH

	length, llen, err := packet.DecodeRemainingLength(byteReader{e: e})
	if err != nil {
		if err == packet.ErrMalformedLength {
			e.setState(StateDisconnected)
			e.conn.Stop()
			e.log.Warn("malformed remaining length, connection closed")
			return 0, 0, pkgerrors.Wrap(ErrProtocol, err.Error())
		}

		return 0, 0, nil
	}

	_, _ = packet.EncodeRemainingLength(buf[1:], length)

	n := 1 + llen
	start, skip := 0, 0

	if isPublish && length >= 2 {
		for i := 0; i < 2; i++ {
			if buf[n], ok = e.readByte(); !ok {
				return 0, 0, nil
			}
			n++
		}

		skip = int(binary.BigEndian.Uint16(buf[1+llen:]))
		start = 2

		if packet.PublishQoS(h) != packet.QoS0 {
			skip += 2
		}
	}

	idx := n

	for i := start; i < length; i++ {
		b, ok := e.readByte()
		if !ok {
			return 0, 0, nil
		}

		// only payload bytes, past topic and packet id
		if e.sink != nil && isPublish && idx-1-llen >= skip+2 {
			e.one[0] = b
			if _, err = e.sink.Write(e.one[:]); err != nil {
				e.log.Warnf("raw sink: %s", err.Error())
			}
		}

		if n < len(buf) {
			buf[n] = b
			n++
		}

		idx++
	}

	if e.sink == nil && idx > len(buf) {
		e.log.Warnf("%s of %d bytes exceeds buffer capacity %d, discarded", packet.TypeOf(h).Name(), idx, len(buf))
		return 0, 0, nil
	}

	return n, llen, nil
}
