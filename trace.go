// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import (
	"strings"

	hlog "github.com/sdboyer/hoist/log"
)

const (
	successChar = "✓"
	failChar    = "✗"
	backChar    = "←"
)

// tracer narrates one hoist() run at DebugLevel >= 2. All methods are no-ops
// below that level, so call sites don't need to guard themselves.
type tracer struct {
	l *hlog.Logger
}

func newTracer(l *hlog.Logger) *tracer {
	return &tracer{l: l}
}

func (t *tracer) enabled() bool {
	return t != nil && t.l != nil && t.l.Level >= 2
}

func (t *tracer) hoistRoot(r *workNode, depth int) {
	if !t.enabled() {
		return
	}
	t.l.Tracef(2, "%s? hoist to %s", indent(depth), r.ident)
}

func (t *tracer) selected(name string, n *workNode, depth int) {
	if !t.enabled() {
		return
	}
	t.l.Tracef(2, "%s%s hoist %s (%s)", indent(depth), successChar, name, n.ident)
}

func (t *tracer) blocked(name, reason string, depth int) {
	if !t.enabled() {
		return
	}
	t.l.Tracef(2, "%s%s keep %s: %s", indent(depth), failChar, name, reason)
}

func (t *tracer) retryIdent(name, next string, depth int) {
	if !t.enabled() {
		return
	}
	t.l.Tracef(2, "%s%s %s: try next candidate %s", indent(depth), backChar, name, next)
}

func indent(depth int) string {
	return strings.Repeat("| ", depth)
}
