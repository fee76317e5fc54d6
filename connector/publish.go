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
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/VolantMQ/edgeconnector/connection"
	"github.com/VolantMQ/edgeconnector/message"
)

// Publish encodes m into the connector buffer and sends it with QoS0
func (c *Connector) Publish(topic string, m *message.Envelope, retain bool) error {
	if c.Status() != StatusConnected {
		return connection.ErrNotConnected
	}

	n, err := m.Encode(c.buf)
	if err != nil {
		return errors.Wrapf(err, "envelope of %d bytes to %q", m.EncodedSize(), topic)
	}

	return c.engine.Publish(topic, c.buf[:n], retain)
}

func (c *Connector) stamp(dataType string) error {
	c.pub.Reset()

	if err := c.pub.SetLastModified(); err != nil {
		return err
	}

	if len(dataType) > 0 {
		return c.pub.SetDataType(dataType)
	}

	return nil
}

// PublishValue sends data as Value envelope stamped with last-modified and data type
func (c *Connector) PublishValue(topic, dataType string, data []byte) error {
	if err := c.stamp(dataType); err != nil {
		return err
	}

	c.pub.SetData(data)

	return c.Publish(topic, c.pub, false)
}

// PublishString sends s without terminator as Value envelope
func (c *Connector) PublishString(topic, dataType, s string) error {
	return c.PublishValue(topic, dataType, []byte(s))
}

// PublishJSON sends v marshaled to JSON as Value envelope of type application/json
func (c *Connector) PublishJSON(topic string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "connector: marshal json")
	}

	return c.PublishValue(topic, DataTypeJSON, data)
}

// PublishMap sends v as msgpack encoded Map envelope
func (c *Connector) PublishMap(topic string, v map[string]interface{}) error {
	if err := c.stamp(""); err != nil {
		return err
	}

	if err := c.pub.SetMap(v); err != nil {
		return errors.Wrap(err, "connector: marshal map")
	}

	return c.Publish(topic, c.pub, false)
}
