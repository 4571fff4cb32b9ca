// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "testing"

// shrinkTree must turn a cyclic work graph into a cyclic (not infinite)
// Output graph, reusing the same *Output for a node revisited on its own
// path.
func TestShrinkTreeHandlesCycles(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	x := a.new("x", "x@1.0.0", "x@1.0.0")
	y := a.new("y", "y@1.0.0", "y@1.0.0")
	root.dependencies["x"] = x
	x.dependencies["y"] = y
	y.dependencies["x"] = x // cycle back to x

	out := shrinkTree(root)

	xOut := out.Dependencies["x"]
	yOut := xOut.Dependencies["y"]
	if yOut.Dependencies["x"] != xOut {
		t.Fatalf("cycle should collapse onto the same *Output instance for x")
	}
}

// A node that peer-depends on one of its own current siblings must not
// carry that peer edge into the exported tree.
func TestShrinkTreeDropsPeerEdges(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	host := a.new("host", "host@1.0.0", "host@1.0.0")
	plugin := a.new("plugin", "plugin@1.0.0", "plugin@1.0.0")
	plugin.peerNames["host"] = struct{}{}
	plugin.dependencies["host"] = host
	root.dependencies["host"] = host
	root.dependencies["plugin"] = plugin

	out := shrinkTree(root)

	if _, ok := out.Dependencies["plugin"].Dependencies["host"]; ok {
		t.Errorf("peer edge from plugin to host should not appear in exported output")
	}
}

// A node that depends on an instance of itself under its own name collapses
// onto its own Output node rather than creating a second one.
func TestShrinkTreeCollapsesSelfReference(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	self := a.new("self", "self@1.0.0", "self@1.0.0")
	self.dependencies["self"] = self
	root.dependencies["self"] = self

	out := shrinkTree(root)

	selfOut := out.Dependencies["self"]
	if selfOut.Dependencies["self"] != selfOut {
		t.Errorf("self-referencing node should collapse onto its own Output node")
	}
}
