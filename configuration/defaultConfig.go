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
package configuration

// defaultConfig loaded anyway when connector starts
// may be extended/replaced by user-provided config later
var defaultConfig = []byte(`
version: v0.0.1
system:
  log:
    console:
      level: info # available levels: debug, info, warn, error, dpanic, panic, fatal
      timestamp:
        format: RFC3339
connector:
  descriptor:
    name: ""
    vendor: ""
    model: ""
    serialNumber: ""
    accessCode: ""
  connection:
    host: "" # empty: derived from network.gateway
    port: 16300
  network:
    gateway: ""
  loopInterval: 0 # milliseconds
mqtt:
  keepAlive: 30
  socketTimeout: 15
  bufferSize: 4096
  cleanSession: true
  readTimeout: true
  transport:
    kind: tcp # tcp, ws
    path: /mqtt
    dialTimeout: 5
`)
