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

package supervisor

import (
	"errors"
	"reflect"

	gerrors "github.com/goaktkit/kernel/errors"
)

// Directive is the action a supervisor takes when a child fails
// while processing a message.
type Directive int

const (
	// ResumeDirective swallows the failure: the child keeps its state and
	// continues with the next message.
	ResumeDirective Directive = iota
	// RestartDirective discards the failing instance and creates a fresh one.
	// Restarts are rate limited by the strategy.
	RestartDirective
	// StopDirective terminates the failing child.
	StopDirective
	// EscalateDirective hands the failure over to the supervisor's own parent.
	EscalateDirective
)

// String returns the string representation of the directive
func (d Directive) String() string {
	switch d {
	case ResumeDirective:
		return "Resume"
	case RestartDirective:
		return "Restart"
	case StopDirective:
		return "Stop"
	case EscalateDirective:
		return "Escalate"
	default:
		return ""
	}
}

// Decider classifies a failure reason into a Directive
type Decider func(reason error) Directive

// DefaultDecider restarts the failing child whatever the reason
func DefaultDecider(error) Directive {
	return RestartDirective
}

// DeciderOption configures the rules of a decider built with NewDecider
type DeciderOption func(*rules)

type identityRule struct {
	target    error
	directive Directive
}

type rules struct {
	byType     map[string]Directive
	byIdentity []identityRule
	fallback   Directive
}

// WithDirective maps the concrete type of err to directive. Wrapped errors
// are unwrapped until a registered type is found.
func WithDirective(err error, directive Directive) DeciderOption {
	return func(r *rules) {
		r.byType[errorType(err)] = directive
	}
}

// WithErrorIs maps every reason matching target with errors.Is to directive.
// Identity rules are checked before type rules, in registration order.
func WithErrorIs(target error, directive Directive) DeciderOption {
	return func(r *rules) {
		r.byIdentity = append(r.byIdentity, identityRule{target: target, directive: directive})
	}
}

// WithAnyErrorDirective sets the directive returned when no other rule matches.
// Without it the decider falls back to RestartDirective.
func WithAnyErrorDirective(directive Directive) DeciderOption {
	return func(r *rules) {
		r.fallback = directive
	}
}

// NewDecider creates a Decider from error rules
func NewDecider(opts ...DeciderOption) Decider {
	r := &rules{
		byType:   make(map[string]Directive),
		fallback: RestartDirective,
	}
	for _, opt := range opts {
		opt(r)
	}

	return func(reason error) Directive {
		for _, rule := range r.byIdentity {
			if errors.Is(reason, rule.target) {
				return rule.directive
			}
		}

		if directive, ok := r.lookup(reason); ok {
			return directive
		}
		return r.fallback
	}
}

// lookup walks the error tree depth first looking for a registered type
func (r *rules) lookup(err error) (Directive, bool) {
	if err == nil || len(r.byType) == 0 {
		return 0, false
	}

	if directive, ok := r.byType[errorType(err)]; ok {
		return directive, true
	}

	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return r.lookup(x.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if directive, ok := r.lookup(inner); ok {
				return directive, true
			}
		}
	}
	return 0, false
}

// errorType returns the string representation of an error's type using reflection
func errorType(err error) string {
	if err == nil {
		return "nil"
	}

	rtype := reflect.TypeOf(err)
	if rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return rtype.String()
}

// PanicDecider stops children that panicked and restarts them on any other failure.
func PanicDecider(reason error) Directive {
	var panicErr *gerrors.PanicError
	if errors.As(reason, &panicErr) {
		return StopDirective
	}
	return RestartDirective
}
