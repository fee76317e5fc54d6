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
package message

import (
	"github.com/vmihailenco/msgpack/v5"
)

// SetMap encodes v as msgpack payload, sets type Map and data-type option
func (m *Envelope) SetMap(v map[string]interface{}) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}

	if err = m.SetDataType(DataTypeMsgpack); err != nil {
		return err
	}

	m.Type = TypeMap
	m.data = data

	return nil
}

// Map decodes msgpack payload of Map envelope
func (m *Envelope) Map() (map[string]interface{}, error) {
	if m.Type != TypeMap {
		return nil, ErrNotMap
	}

	var v map[string]interface{}
	if err := msgpack.Unmarshal(m.data, &v); err != nil {
		return nil, err
	}

	return v, nil
}
