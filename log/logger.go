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

// Package log defines the logging contract used by the actor kernel together
// with a zap backed implementation and a no-op logger for tests.
package log

import "io"

// Logger is the structured logger carried by the actor system. Every actor
// context exposes a Logger scoped to the actor address.
type Logger interface {
	// Debug starts a new message with debug level.
	Debug(...any)
	// Debugf starts a new message with debug level.
	Debugf(string, ...any)
	// Info starts a new message with info level.
	Info(...any)
	// Infof starts a new message with info level.
	Infof(string, ...any)
	// Warn starts a new message with warn level.
	Warn(...any)
	// Warnf starts a new message with warn level.
	Warnf(string, ...any)
	// Error starts a new message with error level.
	Error(...any)
	// Errorf starts a new message with error level.
	Errorf(string, ...any)
	// Fatal logs then calls os.Exit(1).
	Fatal(...any)
	// Fatalf logs then calls os.Exit(1).
	Fatalf(string, ...any)
	// Panic logs then panics.
	Panic(...any)
	// Panicf logs then panics.
	Panicf(string, ...any)
	// LogLevel returns the minimum level being emitted.
	LogLevel() Level
	// Enabled reports whether a message at the given level would be emitted.
	Enabled(level Level) bool
	// With returns a child Logger carrying the given key/value pairs on every entry.
	With(keyValues ...any) Logger
	// LogOutput returns the writers the logger emits to.
	LogOutput() []io.Writer
	// Flush drains any buffered output.
	Flush() error
}
