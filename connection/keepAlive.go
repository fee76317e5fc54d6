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
	"github.com/VolantMQ/edgeconnector/packet"
)

// Loop services the session: keep alive first, then at most one inbound packet.
// Callers drain a backlog by calling Loop repeatedly.
func (e *Engine) Loop() error {
	if !e.Connected() {
		return ErrNotConnected
	}

	t := e.now()

	if e.keepAlive > 0 && (t.Sub(e.lastIn) > e.keepAlive || t.Sub(e.lastOut) > e.keepAlive) {
		if e.pingOutstanding {
			e.setState(StateConnectionTimeout)
			e.conn.Stop()
			e.log.Warn("ping not answered within keep alive, connection closed")
			return ErrKeepAliveTimeout
		}

		ping := packet.Control(packet.PINGREQ)
		if err := e.send(ping[:]); err != nil {
			e.log.Errorf("PINGREQ: %s", err.Error())
		}

		e.lastOut = t
		e.lastIn = t
		e.pingOutstanding = true
	}

	if e.conn.Available() > 0 {
		n, llen, err := e.readPacket()
		if err != nil {
			return err
		}

		if n > 0 {
			e.lastIn = t
			e.dispatch(n, llen, t)
		} else if !e.Connected() {
			return ErrNotConnected
		}
	}

	return nil
}
