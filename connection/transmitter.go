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
	pkgerrors "github.com/pkg/errors"

	"github.com/VolantMQ/edgeconnector/packet"
)

// send writes complete packet b and records it
func (e *Engine) send(b []byte) error {
	if err := e.sendRaw(b); err != nil {
		return err
	}

	e.metric.OnSent(packet.TypeOf(b[0]))

	return nil
}

// sendRaw writes b without treating it as packet start
func (e *Engine) sendRaw(b []byte) error {
	n, err := e.conn.Write(b)
	e.lastOut = e.now()

	if err != nil {
		return pkgerrors.Wrap(err, "connection: write")
	}

	if n != len(b) {
		return ErrShortWrite
	}

	return nil
}

// writePacket frames length bytes placed at buf[MaxHeaderSize:] and sends them
func (e *Engine) writePacket(header byte, length int) error {
	hlen, err := packet.BuildHeader(e.buf, header, length)
	if err != nil {
		return err
	}

	return e.send(e.buf[packet.MaxHeaderSize-hlen : packet.MaxHeaderSize+length])
}
