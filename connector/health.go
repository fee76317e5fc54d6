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
package connector

import (
	"net"
	"strconv"
	"time"

	"github.com/troian/healthcheck"
)

// nolint: golint
const (
	LivenessCheckName  = "connector-session"
	ReadinessCheckName = "connector-broker"

	brokerDialTimeout = time.Second
)

// HealthChecks liveness check reports session state,
// readiness check dials the broker
func (c *Connector) HealthChecks() (healthcheck.Check, healthcheck.Check) {
	live := func() error {
		if c.Status() != StatusConnected {
			return errSessionDown{state: c.State().String()}
		}

		return nil
	}

	ready := healthcheck.TCPDialCheck(net.JoinHostPort(c.host, strconv.Itoa(int(c.port))), brokerDialTimeout)

	return live, ready
}

// RegisterHealth adds connector checks to h
func (c *Connector) RegisterHealth(h healthcheck.Handler) {
	live, ready := c.HealthChecks()

	h.AddLivenessCheck(LivenessCheckName, live)
	h.AddReadinessCheck(ReadinessCheckName, ready)
}

type errSessionDown struct {
	state string
}

func (e errSessionDown) Error() string {
	return "connector: session " + e.state
}
