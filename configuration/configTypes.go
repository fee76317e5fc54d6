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
	"time"
)

// TimestampConfig entry in system.log.console.timestamp
type TimestampConfig struct {
	Format string `yaml:"format,omitempty"`
}

// ConsoleLogConfig entry in system.log.console
type ConsoleLogConfig struct {
	Level     string           `yaml:"level,omitempty"`
	Timestamp *TimestampConfig `yaml:"timestamp,omitempty"`
}

// LogConfig entry in system.log
type LogConfig struct {
	Console ConsoleLogConfig `yaml:"console,omitempty"`
}

// SystemConfig entry in system
type SystemConfig struct {
	Log LogConfig `yaml:"log,omitempty"`
}

// DescriptorConfig entry in connector.descriptor
type DescriptorConfig struct {
	Name         string `yaml:"name,omitempty"`
	Vendor       string `yaml:"vendor,omitempty"`
	Model        string `yaml:"model,omitempty"`
	SerialNumber string `yaml:"serialNumber,omitempty"`
	AccessCode   string `yaml:"accessCode,omitempty"`
}

// ConnectionConfig entry in connector.connection.
// Empty values are derived from the descriptor and network sections.
type ConnectionConfig struct {
	Host        string `yaml:"host,omitempty"`
	Port        uint16 `yaml:"port,omitempty"`
	ClientID    string `yaml:"clientId,omitempty"`
	ClientGroup string `yaml:"clientGroup,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

// NetworkConfig entry in connector.network
type NetworkConfig struct {
	Gateway string `yaml:"gateway,omitempty"`
}

// ConnectorConfig entry in connector
type ConnectorConfig struct {
	Descriptor   DescriptorConfig `yaml:"descriptor,omitempty"`
	Connection   ConnectionConfig `yaml:"connection,omitempty"`
	Network      NetworkConfig    `yaml:"network,omitempty"`
	LoopInterval int              `yaml:"loopInterval,omitempty"`
}

// TransportConfig entry in mqtt.transport
type TransportConfig struct {
	Kind        string `yaml:"kind,omitempty"`
	Path        string `yaml:"path,omitempty"`
	DialTimeout int    `yaml:"dialTimeout,omitempty"`
}

// MqttConfig client engine config. Periods are in seconds.
type MqttConfig struct {
	KeepAlive     int             `yaml:"keepAlive"`
	SocketTimeout int             `yaml:"socketTimeout,omitempty"`
	BufferSize    int             `yaml:"bufferSize,omitempty"`
	CleanSession  bool            `yaml:"cleanSession"`
	ReadTimeout   bool            `yaml:"readTimeout"`
	Transport     TransportConfig `yaml:"transport,omitempty"`
}

// Config system-wide config
type Config struct {
	Version   string          `yaml:"version,omitempty"`
	System    SystemConfig    `yaml:"system,omitempty"`
	Connector ConnectorConfig `yaml:"connector,omitempty"`
	Mqtt      MqttConfig      `yaml:"mqtt,omitempty"`
}

// KeepAlivePeriod keep alive as duration, zero disables pings
func (c *MqttConfig) KeepAlivePeriod() time.Duration {
	return time.Duration(c.KeepAlive) * time.Second
}

// SocketTimeoutPeriod ...
func (c *MqttConfig) SocketTimeoutPeriod() time.Duration {
	return time.Duration(c.SocketTimeout) * time.Second
}

// DialTimeoutPeriod ...
func (c *TransportConfig) DialTimeoutPeriod() time.Duration {
	return time.Duration(c.DialTimeout) * time.Second
}

// LoopPeriod minimum time between two loop iterations reported as ticks
func (c *ConnectorConfig) LoopPeriod() time.Duration {
	return time.Duration(c.LoopInterval) * time.Millisecond
}
