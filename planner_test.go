// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "testing"

func newLeaf(a *arena, name, ident string) *workNode {
	n := a.new(name, ident, ident)
	return n
}

// A node whose ident matches the hoist-wide winner, with no obstructing
// ancestor or peer, classifies as YES.
func TestClassifyNodeYes(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	parent := a.new("p", "p@1.0.0", "p@1.0.0")
	child := newLeaf(a, "x", "x@1.0.0")
	parent.dependencies["x"] = child

	info := classifyNode([]*workNode{root, parent}, child, map[string]string{"x": "x@1.0.0"}, map[string]*workNode{})
	if info.verdict != verdictYes {
		t.Fatalf("verdict = %v, want verdictYes", info.verdict)
	}
}

// A node whose ident differs from the name's hoist-wide winner cannot
// hoist, regardless of anything else about its position.
func TestClassifyNodeNoOnIdentMismatch(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	parent := a.new("p", "p@1.0.0", "p@1.0.0")
	child := newLeaf(a, "x", "x@2.0.0")
	parent.dependencies["x"] = child

	info := classifyNode([]*workNode{root, parent}, child, map[string]string{"x": "x@1.0.0"}, map[string]*workNode{})
	if info.verdict != verdictNo {
		t.Fatalf("verdict = %v, want verdictNo", info.verdict)
	}
}

// Self-dependency - a node depending on an instance of itself - always
// blocks, since there's nowhere for it to go that isn't itself.
func TestClassifyNodeNoOnSelfReference(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	parent := a.new("p", "p@1.0.0", "p@1.0.0")

	info := classifyNode([]*workNode{root, parent}, parent, map[string]string{"p": "p@1.0.0"}, map[string]*workNode{})
	if info.verdict != verdictNo {
		t.Fatalf("verdict = %v, want verdictNo for self-reference", info.verdict)
	}
}

// An intermediate ancestor (not the immediate parent) holding a different
// ident of the same name shadows the candidate.
func TestClassifyNodeNoOnShadowingAncestor(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	grandparent := a.new("g", "g@1.0.0", "g@1.0.0")
	shadow := newLeaf(a, "x", "x@1.0.0")
	grandparent.dependencies["x"] = shadow
	parent := a.new("p", "p@1.0.0", "p@1.0.0")
	child := newLeaf(a, "x", "x@2.0.0")
	parent.dependencies["x"] = child

	info := classifyNode([]*workNode{root, grandparent, parent}, child, map[string]string{}, map[string]*workNode{})
	if info.verdict != verdictNo {
		t.Fatalf("verdict = %v, want verdictNo (shadowed by grandparent's x@1.0.0)", info.verdict)
	}
}

// A peer whose only supplier is the immediate parent yields DEPENDS, not an
// outright NO: the candidate can still hoist if its peer supplier does too.
func TestClassifyNodeDependsOnParentSuppliedPeer(t *testing.T) {
	a := newArena()
	root := a.new(".", ".@workspace:.", ".@workspace:.")
	parent := a.new("p", "p@1.0.0", "p@1.0.0")
	host := newLeaf(a, "host", "host@1.0.0")
	parent.dependencies["host"] = host
	child := newLeaf(a, "plugin", "plugin@1.0.0")
	child.peerNames["host"] = struct{}{}
	parent.dependencies["plugin"] = child

	info := classifyNode([]*workNode{root, parent}, child, map[string]string{"plugin": "plugin@1.0.0"}, map[string]*workNode{})
	if info.verdict != verdictDepends {
		t.Fatalf("verdict = %v, want verdictDepends", info.verdict)
	}
	if len(info.dependsOn) != 1 || info.dependsOn[0] != host {
		t.Fatalf("dependsOn = %v, want [host]", info.dependsOn)
	}
}

// resolveCycles promotes a DEPENDS node whose only obstruction is another
// DEPENDS node (a genuine cycle with no NO member) to YES.
func TestResolveCyclesPromotesMutualDepends(t *testing.T) {
	a := newArena()
	nodeA := newLeaf(a, "a", "a@1.0.0")
	nodeB := newLeaf(a, "b", "b@1.0.0")

	infos := map[string]hoistInfo{
		"a": {verdict: verdictDepends, dependsOn: []*workNode{nodeB}},
		"b": {verdict: verdictDepends, dependsOn: []*workNode{nodeA}},
	}
	resolveCycles(infos)

	if infos["a"].verdict != verdictYes || infos["b"].verdict != verdictYes {
		t.Fatalf("both nodes in a pure DEPENDS cycle should resolve to YES, got a=%v b=%v", infos["a"].verdict, infos["b"].verdict)
	}
}

// resolveCycles propagates a NO transitively through every DEPENDS edge
// that (directly or indirectly) relies on the blocked node.
func TestResolveCyclesPropagatesNoTransitively(t *testing.T) {
	a := newArena()
	nodeA := newLeaf(a, "a", "a@1.0.0")
	nodeB := newLeaf(a, "b", "b@1.0.0")

	infos := map[string]hoistInfo{
		"a": {verdict: verdictNo, reason: "blocked"},
		"b": {verdict: verdictDepends, dependsOn: []*workNode{nodeA}},
		"c": {verdict: verdictDepends, dependsOn: []*workNode{nodeB}},
	}
	resolveCycles(infos)

	if infos["b"].verdict != verdictNo {
		t.Errorf("b depends directly on blocked a, should become NO")
	}
	if infos["c"].verdict != verdictNo {
		t.Errorf("c depends transitively (through b) on blocked a, should become NO")
	}
}
