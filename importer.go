// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "sort"

// workTree is the mutable work-in-progress graph for one Hoist call. Every
// workNode reachable from root was allocated out of arena; nothing in the
// tree ever points outside it.
type workTree struct {
	arena *arena
	root  *workNode
}

// cloneTree converts an input Node graph into a mutable work tree. Nodes
// reachable from more than one path are marked coupled (decoupled = false)
// across their entire non-peer reachable subgraph, since decoupling status
// is a property of the path taken to reach a node, not of the node itself -
// a node seen only once is trivially decoupled, but one seen twice must be
// cloned before any of its ancestors can safely mutate it.
func cloneTree(input *Node) *workTree {
	a := newArena()
	root := a.new(input.Name, input.Locator(), input.Ident())
	root.references[input.Reference] = struct{}{}

	seen := map[*Node]*workNode{input: root}

	var importNode func(parent *workNode, in *Node)
	importNode = func(parent *workNode, in *Node) {
		for _, name := range sortedNodeDepNames(in) {
			child := in.Dependencies[name]
			isPeer := in.isPeer(name)

			if existing, ok := seen[child]; ok {
				parent.dependencies[name] = existing
				parent.originalDependencies[name] = existing
				if !isPeer {
					markCoupled(existing, map[int]bool{})
				}
				continue
			}

			wn := a.new(name, child.Locator(), child.Ident())
			wn.references[child.Reference] = struct{}{}
			for peerName := range child.PeerNames {
				wn.peerNames[peerName] = struct{}{}
			}
			seen[child] = wn

			parent.dependencies[name] = wn
			parent.originalDependencies[name] = wn

			importNode(wn, child)
		}
	}
	importNode(root, input)

	return &workTree{arena: a, root: root}
}

// markCoupled marks node, and every node reachable from it through non-peer
// edges, as coupled. visited (keyed by handle) bounds the walk to one pass
// per node even when the reachable subgraph contains cycles.
func markCoupled(node *workNode, visited map[int]bool) {
	if visited[node.handle] {
		return
	}
	visited[node.handle] = true
	node.decoupled = false
	for name, child := range node.dependencies {
		if node.isPeer(name) {
			continue
		}
		markCoupled(child, visited)
	}
}

func (n *Node) isPeer(name string) bool {
	_, ok := n.PeerNames[name]
	return ok
}

func sortedNodeDepNames(n *Node) []string {
	names := make([]string, 0, len(n.Dependencies))
	for name := range n.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedDepNames(n *workNode) []string {
	names := make([]string, 0, len(n.dependencies))
	for name := range n.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
