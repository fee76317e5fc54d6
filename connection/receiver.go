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
	"time"

	"github.com/VolantMQ/edgeconnector/packet"
)

// dispatch handles packet read into buf[:n]
func (e *Engine) dispatch(n int, llen int, t time.Time) {
	pkt := e.buf[:n]
	typ := packet.TypeOf(pkt[0])

	e.metric.OnRecv(typ)

	switch typ {
	case packet.PUBLISH:
		e.onPublish(pkt, llen, t)
	case packet.PINGREQ:
		resp := packet.Control(packet.PINGRESP)
		if err := e.send(resp[:]); err != nil {
			e.log.Errorf("PINGRESP: %s", err.Error())
		}
	case packet.PINGRESP:
		e.pingOutstanding = false
	case packet.PUBACK, packet.SUBACK, packet.UNSUBACK:
		// acknowledgements are not correlated
		e.log.Debugf("%s received", typ.Name())
	default:
		e.log.Warnf("unexpected %s ignored", typ.Name())
	}
}

// onPublish decodes PUBLISH in pkt, acknowledges QoS1 and delivers to handler.
// Truncated framing is dropped silently.
func (e *Engine) onPublish(pkt []byte, llen int, t time.Time) {
	off := 1 + llen

	name, n, err := packet.ReadLPBytes(pkt[off:])
	if err != nil {
		return
	}

	topic := string(name)
	off += n

	qos := packet.PublishQoS(pkt[0])

	if qos != packet.QoS0 {
		var id packet.IDType
		if id, err = packet.ReadPacketID(pkt[off:]); err != nil {
			return
		}
		off += 2

		switch qos {
		case packet.QoS1:
			ack := packet.Ack(packet.PUBACK, id)
			if err = e.send(ack[:]); err != nil {
				e.log.Errorf("PUBACK %d: %s", id, err.Error())
			}
			e.lastOut = t
		default:
			e.log.Warnf("%s publish %d on %q delivered without acknowledgement", qos.Desc(), id, topic)
		}
	}

	if e.handler != nil {
		e.handler.OnPublish(topic, pkt[off:])
	}
}
