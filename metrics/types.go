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
	"github.com/VolantMQ/edgeconnector/packet"
)

// Bytes counts raw traffic on a transport
type Bytes interface {
	OnSent(int)
	OnRecv(int)
}

// Packets counts control packets passing the engine
type Packets interface {
	OnSent(p packet.Type)
	OnRecv(p packet.Type)
	OnRejected(n int)
}

// Sessions counts session lifecycle events observed by the connector
type Sessions interface {
	OnConnected()
	OnDisconnected()
	OnRejected()
}

// Informer gives access to all counters of a client
type Informer interface {
	Bytes() Bytes
	Packets() Packets
	Sessions() Sessions
	Snapshot() Stats
}

// FlowCounter pair of directional counters
type FlowCounter struct {
	Sent uint64 `json:"sent" yaml:"sent"`
	Recv uint64 `json:"recv" yaml:"recv"`
}

// PacketStats per-type packet counters. ByType holds only types seen at least once.
type PacketStats struct {
	Total    FlowCounter                 `json:"total" yaml:"total"`
	Rejected uint64                      `json:"rejected" yaml:"rejected"`
	ByType   map[packet.Type]FlowCounter `json:"byType" yaml:"byType"`
}

// SessionStats session counters
type SessionStats struct {
	Connected    uint64 `json:"connected" yaml:"connected"`
	Disconnected uint64 `json:"disconnected" yaml:"disconnected"`
	Rejected     uint64 `json:"rejected" yaml:"rejected"`
}

// Stats point-in-time copy of all counters
type Stats struct {
	Bytes    FlowCounter  `json:"bytes" yaml:"bytes"`
	Packets  PacketStats  `json:"packets" yaml:"packets"`
	Sessions SessionStats `json:"sessions" yaml:"sessions"`
}
