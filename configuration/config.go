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

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfig Load minimum working configuration to allow
// connector start without user provided one
func DefaultConfig() *Config {
	c := Config{}
	if err := yaml.Unmarshal(defaultConfig, &c); err != nil {
		panic(err.Error())
	}

	return &c
}

// ReadConfig reads YAML file over the default configuration.
// Empty path falls back to EDGECONNECTOR_CONFIG, and when that is not set either
// the defaults are returned as is.
func ReadConfig(path string) (*Config, error) {
	log := GetLogger()

	if len(path) == 0 {
		path = configFile
	}

	c := DefaultConfig()

	if len(path) == 0 {
		log.Info("no config file provided, use " + EnvConfigFile + " environment variable to provide own")
		log.Debug("default config: \n", string(defaultConfig))
		return c, nil
	}

	log.Infof("loading config %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err = ParseConfig(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return c, nil
}

// ParseConfig unmarshals YAML document over c and validates result
func ParseConfig(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	return c.Validate()
}

// Validate checks values the connector cannot start with
func (c *Config) Validate() error {
	switch c.Mqtt.Transport.Kind {
	case "tcp", "ws":
	default:
		return errors.Errorf("unsupported transport %q", c.Mqtt.Transport.Kind)
	}

	if c.Mqtt.KeepAlive < 0 || c.Mqtt.KeepAlive > 65535 {
		return errors.Errorf("keepAlive out of range: %d", c.Mqtt.KeepAlive)
	}

	if c.Mqtt.SocketTimeout <= 0 {
		return errors.Errorf("socketTimeout must be positive: %d", c.Mqtt.SocketTimeout)
	}

	if c.Mqtt.BufferSize < 16 {
		return errors.Errorf("bufferSize too small: %d", c.Mqtt.BufferSize)
	}

	if c.Connector.LoopInterval < 0 {
		return errors.Errorf("loopInterval must not be negative: %d", c.Connector.LoopInterval)
	}

	return nil
}
