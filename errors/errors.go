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

// Package errors holds the sentinel and typed errors returned by the actor kernel.
package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrNameExists is returned when a process is registered under an identifier already in use.
	ErrNameExists = errors.New("process name already exists")

	// ErrDeadLetter is returned by a future whose request reached a process that does not exist.
	ErrDeadLetter = errors.New("request target is a dead letter")

	// ErrRequestTimeout indicates that a request timed out while waiting for a response.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrRequestCanceled indicates that a request was canceled before a reply arrived.
	ErrRequestCanceled = errors.New("request canceled")

	// ErrInvalidTimeout is returned when a receive timeout or request timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be greater than zero")

	// ErrGuardianAtNonRoot is raised when a guardian strategy is used by an actor spawned by another actor.
	ErrGuardianAtNonRoot = errors.New("guardian strategy can only be set on top-level actors")

	// ErrActorSystemStopped is returned by operations attempted after the actor system was shut down.
	ErrActorSystemStopped = errors.New("actor system has been stopped")

	// ErrInvalidAddress is returned when an address cannot be parsed or is missing its identifier.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInitFailure indicates that an actor failed to complete its PreStart hook.
	ErrInitFailure = errors.New("actor failed to initialize")

	// ErrStashOutsideMessage is returned when Stash is called without a current message.
	ErrStashOutsideMessage = errors.New("no message to stash")

	// ErrUnexpectedReply is returned by a typed request when the reply has a different type.
	ErrUnexpectedReply = errors.New("unexpected reply type")

	// ErrSchedulerNotStarted is returned by the scheduler when it has not been started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMailboxFull is returned by a bounded mailbox that rejected a message.
	ErrMailboxFull = errors.New("mailbox is full")
)

// NewErrInitFailure wraps a base error with ErrInitFailure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrInvalidConfig wraps a validation error with ErrInvalidConfig.
func NewErrInvalidConfig(err error) error {
	return errors.Join(ErrInvalidConfig, err)
}

// PanicError is the failure reason recorded when an actor panics while
// processing a message. It keeps the recovered value and the goroutine stack.
type PanicError struct {
	value any
	stack []byte
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates a PanicError from a recovered value and captures the current stack.
func NewPanicError(value any) *PanicError {
	return &PanicError{value: value, stack: debug.Stack()}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Unwrap returns the recovered value when it is itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

// Value returns the recovered panic value
func (e *PanicError) Value() any {
	return e.value
}

// Stack returns the goroutine stack captured at recovery time
func (e *PanicError) Stack() []byte {
	return e.stack
}

// AsError converts a recovered panic value into an error. Errors (including
// a PanicError raised deliberately) are returned as-is.
func AsError(value any) error {
	switch v := value.(type) {
	case *PanicError:
		return v
	case error:
		return NewPanicError(v)
	default:
		return NewPanicError(value)
	}
}

// AnyError is the catch-all error type used as a key when mapping errors to
// supervisor directives.
type AnyError struct{}

// interface guard
var _ error = (*AnyError)(nil)

// Error implements error.
func (*AnyError) Error() string {
	return "*"
}
