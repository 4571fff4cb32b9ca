// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

// hoistTo hoists everything possible into r, then recurses into each of r's
// remaining children as a new hoist root. pathSet guards the recursion
// spine against cycles among hoist roots; visitedRoots additionally ensures
// a root already fully processed along some other spine is never revisited.
// aboveHoisted is the set of dependency names already claimed by some
// ancestor above r - empty when r is the overall tree root.
func hoistTo(t *workTree, r *workNode, pathSet map[string]bool, visitedRoots map[int]bool, aboveHoisted map[string]*workNode, opts Options, tr *tracer, depth int) {
	if visitedRoots[r.handle] {
		return
	}
	visitedRoots[r.handle] = true
	tr.hoistRoot(r, depth)

	hoisted := make(map[string]*workNode, len(aboveHoisted)+len(r.hoistedDependencies))
	for name, n := range aboveHoisted {
		hoisted[name] = n
	}
	for name, n := range r.hoistedDependencies {
		hoisted[name] = n
	}

	pop := buildPopularityMap(r)
	idents := buildHoistIdentMap(r, pop)

	for {
		hoistGraph(t, r, hoisted, idents, tr, depth)

		changed := false
		for _, name := range idents.names() {
			c, _ := idents.get(name)
			if c.len() <= 1 {
				continue
			}
			if _, hosted := r.dependencies[name]; hosted {
				continue
			}
			next := c.idents[1]
			c.popHead()
			tr.retryIdent(name, next, depth)
			changed = true
		}
		if !changed {
			break
		}
	}

	for _, name := range sortedDepNames(r) {
		if r.isPeer(name) {
			continue
		}
		d := r.dependencies[name]
		if pathSet[d.locator] {
			continue
		}
		pathSet[d.locator] = true
		hoistTo(t, d, pathSet, visitedRoots, hoisted, opts, tr, depth+1)
		delete(pathSet, d.locator)
	}
}

// hoistGraph performs one mutating pass of hoisting under root r: it
// repeatedly classifies and promotes hoistable descendants into r.dependencies
// until no further node newly reaches r in this pass.
//
// The outer batch starts with r's current direct children, which become the
// first generation of "parent" nodes whose own dependencies get classified
// for hoisting into r. Any node newly hoisted into r during a generation
// joins the next generation, since its dependencies may now also be
// hoistable.
func hoistGraph(t *workTree, r *workNode, hoistedAbove map[string]*workNode, idents identTrie, tr *tracer, depth int) {
	hoistIdents := idents.headMap()

	batch := make([]*workNode, 0, len(r.dependencies))
	for _, name := range sortedDepNames(r) {
		batch = append(batch, r.dependencies[name])
	}

	for len(batch) > 0 {
		var newNodes []*workNode
		for _, candidate := range batch {
			name := candidate.name
			cur, ok := r.dependencies[name]
			if !ok || cur.locator != candidate.locator {
				// Already moved elsewhere by an earlier candidate in this
				// same generation (e.g. merged into an existing sibling).
				continue
			}
			clone := t.arena.decouple(r, name, cur)
			hoistNodeDependencies(t, r, []*workNode{r, clone}, map[string]bool{r.locator: true, clone.locator: true}, clone, hoistIdents, hoistedAbove, &newNodes, tr, depth+1)
		}
		batch = newNodes
	}
}

// hoistNodeDependencies is the inner walk described in the design: for
// parent (reached via path from r), classify each of parent's sorted
// regular dependencies, promote everything hoistable into r.dependencies
// (appending newly-arrived nodes to *newNodes), and recurse - after
// decoupling - into whatever remains, so deeper obstructions get the same
// treatment relative to their own position.
func hoistNodeDependencies(t *workTree, r *workNode, path []*workNode, locatorPath map[string]bool, parent *workNode, hoistIdents map[string]string, hoistedAbove map[string]*workNode, newNodes *[]*workNode, tr *tracer, depth int) {
	names := getSortedRegularDependencies(parent)

	infos := make(map[string]hoistInfo, len(names))
	for _, name := range names {
		infos[name] = classifyNode(path, parent.dependencies[name], hoistIdents, hoistedAbove)
	}
	infos = resolveCycles(infos)

	for _, name := range names {
		child := parent.dependencies[name]
		info := infos[name]

		if info.verdict != verdictNo {
			tr.selected(name, child, depth)
			delete(parent.dependencies, name)
			parent.hoistedDependencies[name] = child
			delete(parent.reasons, name)

			if existing, ok := r.dependencies[name]; ok {
				if existing.ident == child.ident {
					for ref := range child.references {
						existing.references[ref] = struct{}{}
					}
				}
				continue
			}
			if child.ident == r.ident {
				continue // self-loop onto r: simply drop, nothing to add
			}
			r.dependencies[name] = child
			*newNodes = append(*newNodes, child)
			continue
		}

		tr.blocked(name, info.reason, depth)
		parent.reasons[name] = info.reason

		if locatorPath[child.locator] {
			continue
		}
		clone := t.arena.decouple(parent, name, child)
		nextPath := append(append([]*workNode{}, path...), clone)
		nextLocators := make(map[string]bool, len(locatorPath)+1)
		for k := range locatorPath {
			nextLocators[k] = true
		}
		nextLocators[clone.locator] = true
		hoistNodeDependencies(t, r, nextPath, nextLocators, clone, hoistIdents, hoistedAbove, newNodes, tr, depth+1)
	}
}

// decouple returns node if it is already decoupled, or otherwise clones it,
// rewrites owner's edge to the name to point at the clone, and returns the
// clone. A self-dependency - node.dependencies[node.name] pointing back at
// node itself with the same ident - is redirected to the clone so the
// clone's own self-reference stays internally consistent.
func (a *arena) decouple(owner *workNode, name string, node *workNode) *workNode {
	if node.decoupled {
		return node
	}
	clone := a.clone(node)
	if self, ok := clone.dependencies[clone.name]; ok && self.ident == clone.ident {
		clone.dependencies[clone.name] = clone
	}
	owner.dependencies[name] = clone
	return clone
}

// getSortedRegularDependencies orders node's non-peer dependencies so that
// whenever dependency D peer-depends on some other dependency P that is
// also a direct non-peer dependency of node, P appears before D. This is a
// heuristic, not an invariant: it lets simple, unencumbered packages hoist
// first, which tends to reduce the number of DEPENDS classifications the
// planner has to untangle.
func getSortedRegularDependencies(node *workNode) []string {
	var order []string
	visited := map[string]bool{}

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		dep, ok := node.dependencies[name]
		if !ok {
			return
		}
		for _, peerName := range sortedStringSet(dep.peerNames) {
			if node.isPeer(peerName) {
				continue
			}
			if _, isSibling := node.dependencies[peerName]; !isSibling {
				continue
			}
			visit(peerName)
		}
		order = append(order, name)
	}

	names := sortedDepNames(node)
	for _, name := range names {
		if node.isPeer(name) {
			continue
		}
		visit(name)
	}
	return order
}
