// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "strings"

// Node is an immutable description of one package instance in the input
// dependency graph. A Node's dependencies may form cycles; the graph is not
// required to be a tree.
type Node struct {
	// Name is the alias under which a parent depends on this package. It may
	// differ from IdentName when a parent has re-named its dependency.
	Name string

	// IdentName is the real, resolved package name.
	IdentName string

	// Reference is the version or source string for this instance. It may
	// carry a virtual segment before a '#', which Ident strips.
	Reference string

	// Dependencies holds this node's declared dependencies, keyed by the
	// alias name under which this node depends on them.
	Dependencies map[string]*Node

	// PeerNames is the subset of Dependencies' keys that are peer
	// dependencies: names this node insists be supplied by its parent.
	PeerNames map[string]struct{}
}

// Locator is the globally unique instance key "<identName>@<reference>",
// virtual segment included.
func (n *Node) Locator() string {
	return locatorString(n.IdentName, n.Reference)
}

// Ident is Locator with any virtual prefix stripped from the reference. Two
// nodes denoting the same resolved package version share an Ident even if
// one of them is wrapped in a virtual instance.
func (n *Node) Ident() string {
	return locatorString(n.IdentName, stripVirtual(n.Reference))
}

func locatorString(identName, reference string) string {
	return identName + "@" + reference
}

// stripVirtual removes a virtual prefix - everything up to and including the
// first '#' - from a reference string. References with no '#' are returned
// unchanged.
func stripVirtual(reference string) string {
	if idx := strings.IndexByte(reference, '#'); idx >= 0 {
		return reference[idx+1:]
	}
	return reference
}

// splitLocator recovers identName and reference from a locator or ident
// string. It locates the first '@' after position 0, rather than the first
// '@' overall, since scoped package names (e.g. "@scope/name") commonly
// begin with '@' themselves.
func splitLocator(locator string) (identName, reference string) {
	if locator == "" {
		return "", ""
	}
	if idx := strings.IndexByte(locator[1:], '@'); idx >= 0 {
		idx++
		return locator[:idx], locator[idx+1:]
	}
	return locator, ""
}

// workNode is the mutable representation of one package instance used while
// hoisting. Every workNode lives in exactly one arena and is addressed by its
// handle for the lifetime of a single hoist() call; pointers are never
// shared across arenas.
//
// decoupled is true iff there is a single logical path from the tree root to
// this node (or it has been cloned to make that true). Only a decoupled node
// may be mutated; see arena.decouple.
type workNode struct {
	handle    int
	name      string
	locator   string
	ident     string
	decoupled bool

	references map[string]struct{}

	// dependencies is the current, live view, mutated as hoisting proceeds.
	dependencies map[string]*workNode

	// originalDependencies is the immutable record of what was declared at
	// import time; the self-check walks this, never dependencies.
	originalDependencies map[string]*workNode

	// hoistedDependencies records deps that were present on this node but
	// have since moved upward, so descendants still know the name is
	// already claimed somewhere above them.
	hoistedDependencies map[string]*workNode

	peerNames map[string]struct{}

	// reasons records, for diagnostic purposes only, why a given
	// dependency name could not be hoisted out of this node.
	reasons map[string]string
}

func (n *workNode) isPeer(name string) bool {
	_, ok := n.peerNames[name]
	return ok
}

// arena owns every workNode allocated during one hoist() call. Nodes are
// addressed by stable integer handles rather than by pointer identity alone,
// so that the engine's bookkeeping (visited sets, path sets) can be expressed
// as plain maps keyed on a small integer or a locator string.
type arena struct {
	nodes []*workNode
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) new(name, locator, ident string) *workNode {
	n := &workNode{
		handle:               len(a.nodes),
		name:                 name,
		locator:              locator,
		ident:                ident,
		decoupled:            true,
		references:           map[string]struct{}{},
		dependencies:         map[string]*workNode{},
		originalDependencies: map[string]*workNode{},
		hoistedDependencies:  map[string]*workNode{},
		peerNames:            map[string]struct{}{},
		reasons:              map[string]string{},
	}
	a.nodes = append(a.nodes, n)
	return n
}

// clone allocates a new handle holding a shallow copy of n. Dependencies,
// hoistedDependencies, reasons, references and peerNames are copied into
// fresh maps so the clone can be mutated independently; originalDependencies
// is shared, since it is never written to after import.
func (a *arena) clone(n *workNode) *workNode {
	c := &workNode{
		handle:               len(a.nodes),
		name:                 n.name,
		locator:              n.locator,
		ident:                n.ident,
		decoupled:            true,
		references:           copyStringSet(n.references),
		dependencies:         copyNodeMap(n.dependencies),
		originalDependencies: n.originalDependencies,
		hoistedDependencies:  copyNodeMap(n.hoistedDependencies),
		peerNames:            copyStringSet(n.peerNames),
		reasons:              copyStringStringMap(n.reasons),
	}
	a.nodes = append(a.nodes, c)
	return c
}

func copyStringSet(s map[string]struct{}) map[string]struct{} {
	c := make(map[string]struct{}, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

func copyNodeMap(m map[string]*workNode) map[string]*workNode {
	c := make(map[string]*workNode, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyStringStringMap(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Output is one node of the hoisted result tree. Unlike Node, its
// dependencies carry no peer annotation - every peer promise has already
// been discharged by the time shrinkTree produces an Output graph - and a
// single instance may legitimately be reached via more than one parent
// (that sharing is the point of hoisting).
type Output struct {
	Name         string
	IdentName    string
	References   map[string]struct{}
	Dependencies map[string]*Output
}
