// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log is a minimal leveled logger shared by the hoist engine and its
// command-line front end. It intentionally does not pull in a structured
// logging framework: trace output is a flat, indented transcript of one
// solve/hoist run, read by a human, not shipped anywhere.
package log

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer, gated by a verbosity
// level so callers don't have to scatter level checks across the codebase.
type Logger struct {
	io.Writer
	Level int
}

// New returns a new logger which writes to w at the given level.
func New(w io.Writer, level int) *Logger {
	return &Logger{Writer: w, Level: level}
}

// Logln logs a line unconditionally.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string unconditionally.
func (l *Logger) Logf(f string, args ...interface{}) {
	fmt.Fprintf(l, f, args...)
}

// Tracef logs a formatted line only if the logger's level is at least
// atLevel. Used to gate the progressively more verbose debugLevel tiers.
func (l *Logger) Tracef(atLevel int, f string, args ...interface{}) {
	if l == nil || l.Level < atLevel {
		return
	}
	fmt.Fprintf(l, f+"\n", args...)
}
