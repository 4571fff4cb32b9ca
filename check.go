// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "sort"

// CheckInvariants walks the fully-hoisted work tree and verifies I1 (require
// preservation) and I2 (peer coherence) against the originalDependencies
// recorded at import time. It returns every broken promise found; a nil or
// empty result means the tree is consistent.
//
// The walk is expensive - every original edge triggers an ancestor-chain
// resolution - which is why it's gated behind Options.Check / DebugLevel, not
// run unconditionally.
func CheckInvariants(tree *workTree) []BrokenPromise {
	var broken []BrokenPromise
	visited := map[int]bool{}

	var walk func(path []*workNode, node *workNode)
	walk = func(path []*workNode, node *workNode) {
		if visited[node.handle] {
			return
		}
		visited[node.handle] = true

		for _, name := range sortedOriginalDepNames(node) {
			want := node.originalDependencies[name]
			childPath := append(append([]*workNode{}, path...), node)

			if node.isPeer(name) {
				if len(path) == 0 {
					continue // peer of the tree root has no parent view to check against
				}
				// The parent's view of name: nearest-wins from the parent up.
				got := resolveRequire(path, name)
				if got == nil || got.ident != want.ident {
					broken = append(broken, BrokenPromise{
						Kind:    BrokenPeer,
						Node:    node.ident,
						DepName: name,
						Wanted:  want.ident,
						Got:     gotIdent(got, got != nil),
					})
				}
				walk(childPath, want)
				continue
			}

			got := resolveRequire(childPath, name)
			if got == nil || got.ident != want.ident {
				broken = append(broken, BrokenPromise{
					Kind:    BrokenRequire,
					Node:    node.ident,
					DepName: name,
					Wanted:  want.ident,
					Got:     gotIdent(got, got != nil),
				})
			}
			walk(childPath, want)
		}
	}
	walk(nil, tree.root)

	return broken
}

// resolveRequire performs the nearest-wins resolution walk for name,
// starting at the end of path (the node whose original edge is being
// checked) and working back up to the tree root. The first ancestor whose
// current dependencies contains name wins, since that's where hoisting
// would have left it.
func resolveRequire(path []*workNode, name string) *workNode {
	for i := len(path) - 1; i >= 0; i-- {
		if dep, ok := path[i].dependencies[name]; ok {
			return dep
		}
	}
	return nil
}

func gotIdent(n *workNode, ok bool) string {
	if !ok || n == nil {
		return ""
	}
	return n.ident
}

func sortedOriginalDepNames(n *workNode) []string {
	names := make([]string, 0, len(n.originalDependencies))
	for name := range n.originalDependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
