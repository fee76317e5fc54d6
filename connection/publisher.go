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
package connection

import (
	"github.com/VolantMQ/edgeconnector/packet"
)

// Publish sends QoS0 message. Nothing is written when
// fixed header, topic and payload do not fit working buffer.
func (e *Engine) Publish(topic string, payload []byte, retained bool) error {
	return e.PublishParts(topic, retained, payload)
}

// PublishParts sends QoS0 message which payload is concatenation of parts
func (e *Engine) PublishParts(topic string, retained bool, parts ...[]byte) error {
	if !e.Connected() {
		return ErrNotConnected
	}

	if e.streamLeft >= 0 {
		return ErrPublishPending
	}

	if len(topic) == 0 {
		return packet.ErrInvalidTopic
	}

	size := packet.MaxHeaderSize + 2 + len(topic)
	for _, p := range parts {
		size += len(p)
	}

	if size > len(e.buf) {
		return ErrCapacity
	}

	n, err := packet.WriteLPString(e.buf[packet.MaxHeaderSize:], topic)
	if err != nil {
		return err
	}

	offset := packet.MaxHeaderSize + n
	for _, p := range parts {
		offset += copy(e.buf[offset:], p)
	}

	return e.writePacket(packet.PublishHeader(packet.QoS0, retained, false), offset-packet.MaxHeaderSize)
}

// BeginPublish starts QoS0 message with payload of given length streamed
// through Write. Payload is not limited by working buffer.
func (e *Engine) BeginPublish(topic string, length int, retained bool) error {
	if !e.Connected() {
		return ErrNotConnected
	}

	if e.streamLeft >= 0 {
		return ErrPublishPending
	}

	if len(topic) == 0 {
		return packet.ErrInvalidTopic
	}

	if length < 0 || packet.MaxHeaderSize+2+len(topic) > len(e.buf) {
		return ErrCapacity
	}

	n, err := packet.WriteLPString(e.buf[packet.MaxHeaderSize:], topic)
	if err != nil {
		return err
	}

	hlen, err := packet.BuildHeader(e.buf, packet.PublishHeader(packet.QoS0, retained, false), n+length)
	if err != nil {
		return err
	}

	if err = e.send(e.buf[packet.MaxHeaderSize-hlen : packet.MaxHeaderSize+n]); err != nil {
		return err
	}

	e.streamLeft = length

	return nil
}

// Write streams payload bytes of a publish started with BeginPublish
func (e *Engine) Write(p []byte) (int, error) {
	if e.streamLeft < 0 {
		return 0, ErrNoPublish
	}

	if len(p) > e.streamLeft {
		return 0, ErrPublishOverflow
	}

	if err := e.sendRaw(p); err != nil {
		return 0, err
	}

	e.streamLeft -= len(p)

	return len(p), nil
}

// EndPublish completes streamed publish. A publish shorter than announced
// leaves the stream unframed, transport is closed in that case.
func (e *Engine) EndPublish() error {
	left := e.streamLeft
	e.streamLeft = -1

	if left < 0 {
		return nil
	}

	if left > 0 {
		e.log.Errorf("streamed publish short by %d bytes, connection closed", left)
		e.setState(StateDisconnected)
		e.conn.Stop()
		return ErrPublishShort
	}

	return e.conn.Flush()
}

// Subscribe sends single topic SUBSCRIBE and returns its packet id.
// SUBACK is not awaited.
func (e *Engine) Subscribe(topic string, qos packet.QosType) (packet.IDType, error) {
	if len(topic) == 0 {
		return 0, packet.ErrInvalidTopic
	}

	if qos > packet.QoS1 {
		return 0, packet.ErrInvalidQoS
	}

	// header, packet id, topic length, topic and requested QoS
	if packet.MaxHeaderSize+2+2+len(topic)+1 > len(e.buf) {
		return 0, ErrCapacity
	}

	if !e.Connected() {
		return 0, ErrNotConnected
	}

	if e.streamLeft >= 0 {
		return 0, ErrPublishPending
	}

	id := e.nextPacketID()

	n, err := packet.EncodeSubscribe(e.buf[packet.MaxHeaderSize:], id, topic, qos)
	if err != nil {
		return 0, err
	}

	if err = e.writePacket(packet.SUBSCRIBE.Header(), n); err != nil {
		return 0, err
	}

	return id, nil
}

// Unsubscribe sends single topic UNSUBSCRIBE and returns its packet id.
// UNSUBACK is not awaited.
func (e *Engine) Unsubscribe(topic string) (packet.IDType, error) {
	if len(topic) == 0 {
		return 0, packet.ErrInvalidTopic
	}

	if packet.MaxHeaderSize+2+2+len(topic) > len(e.buf) {
		return 0, ErrCapacity
	}

	if !e.Connected() {
		return 0, ErrNotConnected
	}

	if e.streamLeft >= 0 {
		return 0, ErrPublishPending
	}

	id := e.nextPacketID()

	n, err := packet.EncodeUnsubscribe(e.buf[packet.MaxHeaderSize:], id, topic)
	if err != nil {
		return 0, err
	}

	if err = e.writePacket(packet.UNSUBSCRIBE.Header(), n); err != nil {
		return 0, err
	}

	return id, nil
}
