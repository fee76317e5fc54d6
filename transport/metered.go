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
package transport

import (
	"github.com/VolantMQ/edgeconnector/metrics"
)

// Metered records traffic of wrapped transport
type Metered struct {
	Transport
	stat metrics.Bytes
}

var _ Transport = (*Metered)(nil)

// NewMetered wraps t, nil stat disables recording
func NewMetered(t Transport, stat metrics.Bytes) *Metered {
	if stat == nil {
		stat = metrics.Nop().Bytes()
	}

	return &Metered{
		Transport: t,
		stat:      stat,
	}
}

// Write ...
func (m *Metered) Write(b []byte) (int, error) {
	n, err := m.Transport.Write(b)
	if n > 0 {
		m.stat.OnSent(n)
	}

	return n, err
}

// ReadByte ...
func (m *Metered) ReadByte() (byte, error) {
	b, err := m.Transport.ReadByte()
	if err == nil {
		m.stat.OnRecv(1)
	}

	return b, err
}
