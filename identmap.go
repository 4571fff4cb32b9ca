// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "github.com/armon/go-radix"

// identCandidates is the ordered, deduplicated list of idents competing for
// one dependency name under a single hoist root, most-preferred first.
type identCandidates struct {
	idents []string
	seen   map[string]bool
}

func newIdentCandidates(first string) *identCandidates {
	return &identCandidates{
		idents: []string{first},
		seen:   map[string]bool{first: true},
	}
}

// append adds ident to the back of the list if it isn't already present.
// Reports whether it was added.
func (c *identCandidates) append(ident string) bool {
	if c.seen[ident] {
		return false
	}
	c.seen[ident] = true
	c.idents = append(c.idents, ident)
	return true
}

func (c *identCandidates) head() string {
	return c.idents[0]
}

// popHead discards the current best candidate so the next one takes over.
// No-op if only one candidate remains - the caller is expected to check
// len() first.
func (c *identCandidates) popHead() {
	if len(c.idents) <= 1 {
		return
	}
	delete(c.seen, c.idents[0])
	c.idents = c.idents[1:]
}

func (c *identCandidates) len() int {
	return len(c.idents)
}

// identTrie is a typed wrapper around a radix tree mapping dependency name to
// its identCandidates. It exists purely to avoid type assertions everywhere
// else identMap is touched; radix gives us lexical-order iteration for free,
// which keeps diagnostic dumps and tie-break fallbacks deterministic.
type identTrie struct {
	t *radix.Tree
}

func newIdentTrie() identTrie {
	return identTrie{t: radix.New()}
}

func (m identTrie) get(name string) (*identCandidates, bool) {
	v, ok := m.t.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*identCandidates), true
}

func (m identTrie) set(name string, c *identCandidates) {
	m.t.Insert(name, c)
}

// names returns every name present in the map, in lexical order.
func (m identTrie) names() []string {
	names := make([]string, 0, m.t.Len())
	m.t.Walk(func(s string, _ interface{}) bool {
		names = append(names, s)
		return false
	})
	return names
}

// headMap returns a plain name -> current best ident snapshot. Taking a
// snapshot (rather than handing out the live trie) keeps a single
// hoistGraph pass working against one consistent view of hoistIdents even
// as hoistTo shifts candidates between passes.
func (m identTrie) headMap() map[string]string {
	heads := make(map[string]string, m.t.Len())
	m.t.Walk(func(name string, v interface{}) bool {
		heads[name] = v.(*identCandidates).head()
		return false
	})
	return heads
}
