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

	"github.com/google/uuid"
)

// DefaultHost address of the edge broker on a network with the given gateway:
// last octet of the gateway plus one, wrapping within the byte
func DefaultHost(gateway string) (string, error) {
	ip := net.ParseIP(gateway).To4()
	if ip == nil {
		return "", ErrInvalidGateway
	}

	host := make(net.IP, net.IPv4len)
	copy(host, ip)
	host[3]++

	return host.String(), nil
}

// DeriveIdentity builds identity from the descriptor.
// Empty serial number is replaced with a random UUID.
func DeriveIdentity(d Descriptor) Identity {
	sn := d.SerialNumber
	if len(sn) == 0 {
		sn = uuid.New().String()
	}

	group := "device/" + d.Name

	return Identity{
		ClientGroup: group,
		ClientID:    group + "/" + sn,
		Username:    d.Model,
		Password:    d.AccessCode,
	}
}
