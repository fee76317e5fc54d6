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
package metrics

import (
	"sync/atomic"

	"github.com/VolantMQ/edgeconnector/packet"
)

type flow struct {
	sent atomic.Uint64
	recv atomic.Uint64
}

type bytes flow

type packets struct {
	total    flow
	rejected atomic.Uint64
	byType   [packet.AUTH + 1]flow
}

type sessions struct {
	connected    atomic.Uint64
	disconnected atomic.Uint64
	rejected     atomic.Uint64
}

var _ Bytes = (*bytes)(nil)
var _ Packets = (*packets)(nil)
var _ Sessions = (*sessions)(nil)

type impl struct {
	bytes    bytes
	packets  packets
	sessions sessions
}

var _ Informer = (*impl)(nil)

// New allocates zeroed counters
func New() Informer {
	return &impl{}
}

func (im *impl) Bytes() Bytes {
	return &im.bytes
}

func (im *impl) Packets() Packets {
	return &im.packets
}

func (im *impl) Sessions() Sessions {
	return &im.sessions
}

func (im *impl) Snapshot() Stats {
	st := Stats{
		Bytes: (*flow)(&im.bytes).load(),
		Packets: PacketStats{
			Total:    im.packets.total.load(),
			Rejected: im.packets.rejected.Load(),
			ByType:   make(map[packet.Type]FlowCounter),
		},
		Sessions: SessionStats{
			Connected:    im.sessions.connected.Load(),
			Disconnected: im.sessions.disconnected.Load(),
			Rejected:     im.sessions.rejected.Load(),
		},
	}

	for i := range im.packets.byType {
		if fc := im.packets.byType[i].load(); fc.Sent != 0 || fc.Recv != 0 {
			st.Packets.ByType[packet.Type(i)] = fc
		}
	}

	return st
}

func (f *flow) load() FlowCounter {
	return FlowCounter{
		Sent: f.sent.Load(),
		Recv: f.recv.Load(),
	}
}

func (t *bytes) OnSent(n int) {
	t.sent.Add(uint64(n))
}

func (t *bytes) OnRecv(n int) {
	t.recv.Add(uint64(n))
}

func (t *packets) OnSent(mt packet.Type) {
	t.total.sent.Add(1)

	if mt <= packet.AUTH {
		t.byType[mt].sent.Add(1)
	}
}

func (t *packets) OnRecv(mt packet.Type) {
	t.total.recv.Add(1)

	if mt <= packet.AUTH {
		t.byType[mt].recv.Add(1)
	}
}

func (t *packets) OnRejected(n int) {
	t.rejected.Add(uint64(n))
}

func (t *sessions) OnConnected() {
	t.connected.Add(1)
}

func (t *sessions) OnDisconnected() {
	t.disconnected.Add(1)
}

func (t *sessions) OnRejected() {
	t.rejected.Add(1)
}

type nop struct{}
type nopBytes struct{}
type nopPackets struct{}
type nopSessions struct{}

// Nop returns counters that record nothing
func Nop() Informer {
	return nop{}
}

func (nop) Bytes() Bytes       { return nopBytes{} }
func (nop) Packets() Packets   { return nopPackets{} }
func (nop) Sessions() Sessions { return nopSessions{} }
func (nop) Snapshot() Stats    { return Stats{} }

func (nopBytes) OnSent(int) {}
func (nopBytes) OnRecv(int) {}

func (nopPackets) OnSent(packet.Type) {}
func (nopPackets) OnRecv(packet.Type) {}
func (nopPackets) OnRejected(int)     {}

func (nopSessions) OnConnected()    {}
func (nopSessions) OnDisconnected() {}
func (nopSessions) OnRejected()     {}
