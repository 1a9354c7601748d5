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

// Package address provides the value type used to route messages to a process.
//
// An address is made of two parts:
//
//   - Origin: the location that hosts the process. Processes owned by the
//     local actor system carry LocalOrigin. Any other origin is resolved by
//     host resolvers registered on the process registry.
//   - ID: the identifier of the process, unique within its origin.
//
// The canonical textual representation of an Address is:
//
//	<origin>/<id>
//
// Address is an immutable value: it is safe to copy, compare with == and use
// as a map key.
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goaktkit/kernel/errors"
	"github.com/goaktkit/kernel/internal/validation"
)

// LocalOrigin is the origin carried by processes hosted by the local actor system
const LocalOrigin = "local"

const separator = "/"

var originPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.:@]*$`)

// Address identifies a routable destination
type Address struct {
	origin string
	id     string
}

var _ validation.Validator = Address{}

// New creates an Address for the given origin and id
func New(origin, id string) Address {
	return Address{origin: origin, id: id}
}

// Local creates an Address hosted by the local actor system
func Local(id string) Address {
	return Address{origin: LocalOrigin, id: id}
}

// NoSender returns the zero Address used when a message has no sender
func NoSender() Address {
	return Address{}
}

// Origin returns the location hosting the process
func (a Address) Origin() string {
	return a.origin
}

// ID returns the process identifier
func (a Address) ID() string {
	return a.id
}

// IsLocal reports whether the address is hosted by the local actor system
func (a Address) IsLocal() bool {
	return a.origin == LocalOrigin
}

// IsZero reports whether the address is the zero value (no sender)
func (a Address) IsZero() bool {
	return a.origin == "" && a.id == ""
}

// Equals reports whether both addresses designate the same process
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns the canonical representation of the address
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.origin + separator + a.id
}

// Validate checks that both parts are set and that the origin is well formed.
// The zero address is considered valid.
func (a Address) Validate() error {
	if a.IsZero() {
		return nil
	}

	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("origin", a.origin)).
		AddValidator(validation.NewEmptyStringValidator("id", a.id)).
		AddValidator(validation.NewPatternValidator(originPattern, a.origin, fmt.Errorf("invalid origin %q", a.origin))).
		Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidAddress, err)
	}
	return nil
}

// Parse reads an address from its canonical representation.
// The identifier may itself contain the separator; only the first one splits.
func Parse(text string) (Address, error) {
	origin, id, ok := strings.Cut(text, separator)
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", errors.ErrInvalidAddress, text)
	}

	addr := New(origin, id)
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}
