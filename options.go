// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import (
	"io"
	"os"
	"strconv"

	hlog "github.com/sdboyer/hoist/log"
)

// Options controls the optional, non-normative behavior of a Hoist call.
// The zero Options is a valid, silent, unchecked run.
type Options struct {
	// Check runs the self-consistency check (see CheckInvariants) once,
	// after hoisting has finished; it is not run between executor passes.
	// It is expensive - O(tree size) - and exists for debugging the engine
	// itself, not for production use.
	Check bool

	// DebugLevel controls how much diagnostic output is produced:
	//   <0 silent (default)
	//    0 no diagnostic output; no timing is recorded at any level
	//   >=1 final self-check
	//   >=2 collect NO/DEPENDS reasons and dump the tree
	//   >=9 implies Check
	//
	// NewOptions derives it from NM_DEBUG_LEVEL; constructing an Options
	// literal directly leaves it at the literal value given.
	DebugLevel int

	// Trace, if non-nil, receives the human-readable trace transcript.
	// Only consulted when DebugLevel >= 2.
	Trace io.Writer
}

// NewOptions returns the default Options, with DebugLevel derived from the
// NM_DEBUG_LEVEL environment variable (or -1, silent, if unset or
// unparseable).
func NewOptions() Options {
	level := -1
	if v, ok := os.LookupEnv("NM_DEBUG_LEVEL"); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			level = parsed
		}
	}
	return Options{DebugLevel: level}
}

func (o Options) effectiveCheck() bool {
	return o.Check || o.DebugLevel >= 1
}

func (o Options) logger() *hlog.Logger {
	w := o.Trace
	if w == nil {
		w = io.Discard
	}
	return hlog.New(w, o.DebugLevel)
}
