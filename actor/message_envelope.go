// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"maps"
	"slices"
)

// ReadonlyMessageHeader is the read view of the headers carried by an envelope
type ReadonlyMessageHeader interface {
	Get(key string) string
	Keys() []string
	Length() int
	ToMap() map[string]string
}

// MessageHeader holds the headers of a message envelope
type MessageHeader map[string]string

var _ ReadonlyMessageHeader = MessageHeader(nil)

// EmptyMessageHeader is returned for messages that carry no header
var EmptyMessageHeader = make(MessageHeader)

// Get returns the value of the key, or the empty string
func (m MessageHeader) Get(key string) string {
	return m[key]
}

// Set sets the value of the key
func (m MessageHeader) Set(key, value string) {
	m[key] = value
}

// Keys returns the sorted header keys
func (m MessageHeader) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Length returns the number of headers
func (m MessageHeader) Length() int {
	return len(m)
}

// ToMap returns a copy of the headers
func (m MessageHeader) ToMap() map[string]string {
	return maps.Clone(map[string]string(m))
}

// MessageEnvelope is a message together with its sender and headers.
// A message sent without either travels bare and is read as an envelope
// with both absent.
type MessageEnvelope struct {
	Header  MessageHeader
	Message any
	Sender  *PID
}

// GetHeader returns the value of the header key
func (me *MessageEnvelope) GetHeader(key string) string {
	if me.Header == nil {
		return ""
	}
	return me.Header.Get(key)
}

// SetHeader sets the header key
func (me *MessageEnvelope) SetHeader(key, value string) {
	if me.Header == nil {
		me.Header = make(MessageHeader)
	}
	me.Header.Set(key, value)
}

// WrapEnvelope returns the message as an envelope, wrapping it when needed
func WrapEnvelope(message any) *MessageEnvelope {
	if envelope, ok := message.(*MessageEnvelope); ok {
		return envelope
	}
	return &MessageEnvelope{Message: message}
}

// UnwrapEnvelope splits a message into its headers, payload and sender
func UnwrapEnvelope(message any) (ReadonlyMessageHeader, any, *PID) {
	if envelope, ok := message.(*MessageEnvelope); ok {
		return envelope.Header, envelope.Message, envelope.Sender
	}
	return nil, message, nil
}

// UnwrapEnvelopeHeader returns the headers of the message, never nil
func UnwrapEnvelopeHeader(message any) MessageHeader {
	if envelope, ok := message.(*MessageEnvelope); ok && envelope.Header != nil {
		return envelope.Header
	}
	return EmptyMessageHeader
}

// UnwrapEnvelopeMessage returns the payload of the message
func UnwrapEnvelopeMessage(message any) any {
	if envelope, ok := message.(*MessageEnvelope); ok {
		return envelope.Message
	}
	return message
}

// UnwrapEnvelopeSender returns the sender of the message, if any
func UnwrapEnvelopeSender(message any) *PID {
	if envelope, ok := message.(*MessageEnvelope); ok {
		return envelope.Sender
	}
	return nil
}
