// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import (
	"fmt"
	"sort"
)

// popularityEntry flattens one popularityMap bucket for sorting.
type popularityEntry struct {
	name  string
	ident string
	count int
}

// buildHoistIdentMap implements planner Step A: for hoist root r, build the
// ordered, per-name candidate list of idents that may end up living at r.
//
//   - r's own identity is pinned: identMap[r.name] = [r.ident].
//   - every current direct non-peer dependency of r has its identity locked:
//     whatever already hoisted there wins, permanently, for this pass.
//   - every other (name, ident) pair is appended, in descending popularity
//     order, to the name's candidate list - unless the name is pinned.
func buildHoistIdentMap(r *workNode, pop popularityMap) identTrie {
	m := newIdentTrie()
	pinned := map[string]bool{}

	pin := func(name, ident string) {
		if _, ok := m.get(name); ok {
			return
		}
		m.set(name, newIdentCandidates(ident))
		pinned[name] = true
	}

	pin(r.name, r.ident)
	for _, name := range sortedDepNames(r) {
		if r.isPeer(name) {
			continue
		}
		pin(name, r.dependencies[name].ident)
	}

	entries := make([]popularityEntry, 0, len(pop))
	for k, parents := range pop {
		entries = append(entries, popularityEntry{name: k.name, ident: k.ident, count: len(parents)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		if c := compareReferencePrecedence(entries[i].ident, entries[j].ident); c != 0 {
			return c > 0
		}
		if entries[i].name != entries[j].name {
			return entries[i].name < entries[j].name
		}
		return entries[i].ident < entries[j].ident
	})

	for _, e := range entries {
		if r.isPeer(e.name) || pinned[e.name] {
			continue
		}
		c, ok := m.get(e.name)
		if !ok {
			m.set(e.name, newIdentCandidates(e.ident))
			continue
		}
		c.append(e.ident)
	}

	return m
}

// hoistVerdict is the tagged result of classifying one candidate node
// against a hoist root: planner Step B.
type hoistVerdict uint8

const (
	verdictYes hoistVerdict = iota
	verdictNo
	verdictDepends
)

// hoistInfo is the full classification of one candidate, keyed by its name
// under its current parent.
type hoistInfo struct {
	verdict   hoistVerdict
	reason    string      // populated for verdictNo; diagnostics only
	dependsOn []*workNode // populated for verdictDepends
}

// classifyNode implements planner Step B for one candidate node. path is the
// chain of hoist-root-relative ancestors from the hoist root (index 0)
// through node's current parent (the last element) inclusive; parent is
// always path[len(path)-1].
func classifyNode(path []*workNode, node *workNode, hoistIdents map[string]string, hoistedAbove map[string]*workNode) hoistInfo {
	root := path[0]
	parent := path[len(path)-1]

	if node.ident == parent.ident {
		return hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("self-reference to %s", parent.ident)}
	}

	if want, ok := hoistIdents[node.name]; ok && want != node.ident {
		return hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("filled by: %s at %s", want, root.name)}
	}

	if existing, ok := hoistedAbove[node.name]; ok && existing.ident != node.ident {
		return hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("already hoisted above as %s", existing.ident)}
	}

	if len(path) > 1 {
		for _, anc := range path[1 : len(path)-1] {
			if other, ok := anc.dependencies[node.name]; ok && other.ident != node.ident {
				return hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("filled by: %s at %s", other.ident, anc.name)}
			}
		}
	}

	var depends []*workNode
	for _, peerName := range sortedStringSet(node.peerNames) {
		supplierIdx, supplier := resolvePeerSupplier(path, peerName)
		if supplier == nil {
			// Malformed input: a peer name with nothing supplying it.
			// Treated as unconstraining, per the error-handling design.
			continue
		}
		if supplierIdx == len(path)-1 {
			if pd, ok := parent.dependencies[peerName]; ok {
				depends = append(depends, pd)
			}
			continue
		}
		if want, ok := hoistIdents[peerName]; !ok || want != supplier.ident {
			return hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("peer %s pinned to %s at %s, can't follow", peerName, supplier.ident, path[supplierIdx].name)}
		}
	}

	if len(depends) > 0 {
		return hoistInfo{verdict: verdictDepends, dependsOn: depends}
	}
	return hoistInfo{verdict: verdictYes}
}

// resolvePeerSupplier walks path from the immediate parent (last element)
// up to the hoist root (index 0), nearest wins, and returns the index and
// node of the first ancestor that currently supplies name.
func resolvePeerSupplier(path []*workNode, name string) (int, *workNode) {
	for i := len(path) - 1; i >= 0; i-- {
		if d, ok := path[i].dependencies[name]; ok {
			return i, d
		}
	}
	return -1, nil
}

// resolveCycles implements planner Step C: transitive NO propagation over
// DEPENDS edges, leaving only genuine cycles of mutually-dependent YES
// candidates as verdictDepends, which are then promoted to verdictYes.
//
// infos is mutated in place and also returned for convenience.
func resolveCycles(infos map[string]hoistInfo) map[string]hoistInfo {
	dependant := map[string][]string{}
	for name, info := range infos {
		if info.verdict != verdictDepends {
			continue
		}
		for _, dep := range info.dependsOn {
			dependant[dep.name] = append(dependant[dep.name], name)
		}
	}

	noSet := map[string]bool{}
	var worklist []string
	for name, info := range infos {
		if info.verdict == verdictNo {
			noSet[name] = true
			worklist = append(worklist, name)
		}
	}

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, dep := range dependant[name] {
			if noSet[dep] {
				continue
			}
			noSet[dep] = true
			infos[dep] = hoistInfo{verdict: verdictNo, reason: fmt.Sprintf("depends on %s, which cannot hoist", name)}
			worklist = append(worklist, dep)
		}
	}

	for name, info := range infos {
		if info.verdict == verdictDepends && !noSet[name] {
			infos[name] = hoistInfo{verdict: verdictYes}
		}
	}

	return infos
}

func sortedStringSet(s map[string]struct{}) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
