// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "testing"

// A tree whose current dependencies still resolve every originally-declared
// non-peer edge to the right ident passes CheckInvariants cleanly.
func TestCheckInvariantsPassesOnConsistentTree(t *testing.T) {
	tree := cloneTree(&Node{
		Name: ".", IdentName: ".", Reference: "workspace:.",
		Dependencies: map[string]*Node{
			"a": {Name: "a", IdentName: "a", Reference: "1.0.0", Dependencies: map[string]*Node{}, PeerNames: map[string]struct{}{}},
		},
		PeerNames: map[string]struct{}{},
	})

	if broken := CheckInvariants(tree); len(broken) != 0 {
		t.Fatalf("expected no broken promises, got %v", broken)
	}
}

// If a node's current dependencies no longer resolve a declared non-peer
// edge to its original ident, CheckInvariants reports a broken require
// promise.
func TestCheckInvariantsCatchesBrokenRequire(t *testing.T) {
	tree := cloneTree(&Node{
		Name: ".", IdentName: ".", Reference: "workspace:.",
		Dependencies: map[string]*Node{
			"a": {Name: "a", IdentName: "a", Reference: "1.0.0", Dependencies: map[string]*Node{}, PeerNames: map[string]struct{}{}},
		},
		PeerNames: map[string]struct{}{},
	})

	// Simulate a broken hoist: silently drop root's current view of "a"
	// without updating originalDependencies, which the self-check never
	// consults for the current-state side of the comparison.
	delete(tree.root.dependencies, "a")

	broken := CheckInvariants(tree)
	if len(broken) != 1 {
		t.Fatalf("expected exactly one broken promise, got %v", broken)
	}
	if broken[0].Kind != BrokenRequire {
		t.Errorf("Kind = %v, want BrokenRequire", broken[0].Kind)
	}
	if broken[0].DepName != "a" {
		t.Errorf("DepName = %q, want \"a\"", broken[0].DepName)
	}
}

// A peer-named dependency whose resolved instance diverges from its
// parent's view of the same name is reported as a broken peer promise.
func TestCheckInvariantsCatchesBrokenPeer(t *testing.T) {
	tree := cloneTree(&Node{
		Name: ".", IdentName: ".", Reference: "workspace:.",
		Dependencies: map[string]*Node{
			"host": {Name: "host", IdentName: "host", Reference: "1.0.0", Dependencies: map[string]*Node{}, PeerNames: map[string]struct{}{}},
			"plugin": {
				Name: "plugin", IdentName: "plugin", Reference: "1.0.0",
				Dependencies: map[string]*Node{
					"host": {Name: "host", IdentName: "host", Reference: "2.0.0", Dependencies: map[string]*Node{}, PeerNames: map[string]struct{}{}},
				},
				PeerNames: map[string]struct{}{"host": {}},
			},
		},
		PeerNames: map[string]struct{}{},
	})

	broken := CheckInvariants(tree)
	if len(broken) != 1 {
		t.Fatalf("expected exactly one broken promise, got %v", broken)
	}
	if broken[0].Kind != BrokenPeer {
		t.Errorf("Kind = %v, want BrokenPeer", broken[0].Kind)
	}
}
