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
// Package edgeconnector is an MQTT v3.1.1 client for devices talking to an edge broker.
//
// The client is split into layers:
//
//   - packet: fixed header, remaining length and the few control packets a
//     publishing device needs (CONNECT, PUBLISH, SUBSCRIBE, UNSUBSCRIBE, acks)
//   - transport: byte stream to the broker over TCP or WebSocket
//   - connection: single session engine. It is polled rather than running its own
//     goroutines: every Loop call services keep alive and reads at most one packet.
//     Only QoS0 publishing is supported, inbound QoS1 messages are acknowledged.
//   - message: binary envelope carried in PUBLISH payloads. It holds a small text
//     options block (last-modified, data-type) and either a value or a msgpack map.
//   - connector: derives device identity and broker address, reconnects, and
//     dispatches inbound envelopes to the application
//
// A typical device:
//
//   cfg, err := configuration.ReadConfig("")
//   ...
//   c, err := connector.New(cfg, connector.WithHandler(h))
//   ...
//   for {
//       if c.Loop() {
//           _ = c.PublishJSON("device/thermo/state", state)
//       }
//   }
//
// connector.New applies the system.log section to the process logger. Loop reports
// true once per connector.loopInterval milliseconds, on every call when it is zero.
package edgeconnector
