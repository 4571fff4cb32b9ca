// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"

	"github.com/sdboyer/hoist"
)

// wireNode is the on-disk JSON shape of one input tree. Since hoist.Node
// graphs can be cyclic, nodes are addressed by an arbitrary string id rather
// than nested inline, with Root naming the entry point.
type wireNode struct {
	Root  string                    `json:"root"`
	Nodes map[string]wireNodeFields `json:"nodes"`
}

type wireNodeFields struct {
	Name         string            `json:"name"`
	IdentName    string            `json:"identName"`
	Reference    string            `json:"reference"`
	Dependencies map[string]string `json:"dependencies"` // edge name -> node id
	PeerNames    []string          `json:"peerNames"`
}

// toNode materializes the id-keyed wire format into a *hoist.Node graph,
// sharing one *hoist.Node per id so cycles round-trip correctly.
func (w *wireNode) toNode() *hoist.Node {
	built := map[string]*hoist.Node{}

	var build func(id string) *hoist.Node
	build = func(id string) *hoist.Node {
		if n, ok := built[id]; ok {
			return n
		}
		fields, ok := w.Nodes[id]
		if !ok {
			panic(fmt.Sprintf("hoist: wire input references undefined node id %q", id))
		}

		n := &hoist.Node{
			Name:         fields.Name,
			IdentName:    fields.IdentName,
			Reference:    fields.Reference,
			Dependencies: map[string]*hoist.Node{},
			PeerNames:    map[string]struct{}{},
		}
		built[id] = n

		for _, peer := range fields.PeerNames {
			n.PeerNames[peer] = struct{}{}
		}
		for name, depID := range fields.Dependencies {
			n.Dependencies[name] = build(depID)
		}
		return n
	}

	return build(w.Root)
}

// outputGraph is the on-disk JSON shape of a hoisted result: the mirror of
// wireNode for hoist.Output graphs, which can also share nodes (that sharing
// is the entire point of hoisting).
type outputGraph struct {
	Root  string                      `json:"root"`
	Nodes map[string]outputNodeFields `json:"nodes"`
}

type outputNodeFields struct {
	Name         string            `json:"name"`
	IdentName    string            `json:"identName"`
	References   []string          `json:"references"`
	Dependencies map[string]string `json:"dependencies"`
}

func fromOutput(root *hoist.Output) *outputGraph {
	g := &outputGraph{Nodes: map[string]outputNodeFields{}}
	ids := map[*hoist.Output]string{}
	next := 0

	idFor := func(o *hoist.Output) string {
		if id, ok := ids[o]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", next)
		next++
		ids[o] = id
		return id
	}

	var walk func(o *hoist.Output) string
	walk = func(o *hoist.Output) string {
		id := idFor(o)
		if _, done := g.Nodes[id]; done {
			return id
		}
		// Reserve the slot before recursing so a cycle back to o resolves
		// to the same id instead of recursing forever.
		g.Nodes[id] = outputNodeFields{}

		refs := make([]string, 0, len(o.References))
		for ref := range o.References {
			refs = append(refs, ref)
		}
		sort.Strings(refs)

		names := make([]string, 0, len(o.Dependencies))
		for name := range o.Dependencies {
			names = append(names, name)
		}
		sort.Strings(names)

		deps := make(map[string]string, len(names))
		for _, name := range names {
			deps[name] = walk(o.Dependencies[name])
		}

		g.Nodes[id] = outputNodeFields{
			Name:         o.Name,
			IdentName:    o.IdentName,
			References:   refs,
			Dependencies: deps,
		}
		return id
	}

	g.Root = walk(root)
	return g
}
