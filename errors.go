// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// BrokenPromiseKind distinguishes the two ways a hoisted tree can fail its
// self-check.
type BrokenPromiseKind uint8

const (
	// BrokenRequire means a non-peer original dependency no longer
	// resolves, from the offending node, to an instance with the
	// originally-declared ident.
	BrokenRequire BrokenPromiseKind = iota
	// BrokenPeer means a peer-named original dependency's resolved
	// instance no longer matches the instance the node's parent resolves
	// for that same name.
	BrokenPeer
)

func (k BrokenPromiseKind) String() string {
	switch k {
	case BrokenRequire:
		return "require"
	case BrokenPeer:
		return "peer"
	default:
		return "unknown"
	}
}

// BrokenPromise describes a single invariant violation discovered by
// CheckInvariants.
type BrokenPromise struct {
	Kind     BrokenPromiseKind
	Node     string // ident of the node whose promise was broken
	DepName  string // name under which the dependency was declared
	Wanted   string // ident originally declared by the node
	Got      string // ident actually resolved (for a peer, the parent's view), or "" if unresolved
}

func (b BrokenPromise) String() string {
	if b.Got == "" {
		return fmt.Sprintf("%s promise broken: %s's %q now resolves to nothing (wanted %s)", b.Kind, b.Node, b.DepName, b.Wanted)
	}
	return fmt.Sprintf("%s promise broken: %s's %q resolves to %s, wanted %s", b.Kind, b.Node, b.DepName, b.Got, b.Wanted)
}

// SelfCheckError is returned by Hoist when Options.Check (or a sufficiently
// high DebugLevel) is set and the hoisted tree fails CheckInvariants. It is
// never returned in normal, unchecked operation: the engine has no
// recoverable errors of its own.
type SelfCheckError struct {
	Broken []BrokenPromise
	// Dump is a non-normative, human-readable rendering of the hoisted
	// tree at the time of failure, included for debugging.
	Dump string
}

func (e *SelfCheckError) Error() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "hoist: %d invariant violation(s) after hoisting:\n", len(e.Broken))
	for _, b := range e.Broken {
		fmt.Fprintf(&buf, "  %s\n", b)
	}
	return buf.String()
}

func newSelfCheckError(broken []BrokenPromise, dump string) error {
	return errors.WithStack(&SelfCheckError{Broken: broken, Dump: dump})
}
