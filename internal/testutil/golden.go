// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil provides small test helpers shared across the hoist
// engine's test suites: golden-file comparison and builders for the
// cyclic *hoist.Node graphs exercised by the planner and executor tests.
package testutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdboyer/hoist"
)

// UpdateGolden controls whether Golden overwrites its fixture instead of
// comparing against it, mirroring the -update convention used throughout
// this codebase's test commands.
var UpdateGolden = flag.Bool("update", false, "update golden files")

// Golden compares got against testdata/<name>.golden, failing t if they
// differ. With -update, it writes got to the fixture instead of comparing.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if *UpdateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("writing golden file %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file %s: %v (run with -update to create it)", path, err)
	}
	if string(want) != string(got) {
		t.Errorf("%s does not match golden file; run with -update to refresh it\n got: %s\nwant: %s", name, got, want)
	}
}

// Builder constructs a *hoist.Node graph key by key, letting tests wire up
// cycles by name rather than fighting Go's lack of cyclic literals.
type Builder struct {
	specs map[string]*NodeSpec
	order []string
}

// NodeSpec is one node under construction: Dependencies maps an edge name
// to the key of another spec registered on the same Builder, and PeerNames
// is the subset of those edge names that are peer dependencies. IdentName
// defaults to Name and Reference defaults to "1.0.0" if left empty.
type NodeSpec struct {
	Name         string
	IdentName    string
	Reference    string
	Dependencies map[string]string
	PeerNames    []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{specs: map[string]*NodeSpec{}}
}

// Add registers spec under key, overwriting any previous registration.
func (b *Builder) Add(key string, spec NodeSpec) *Builder {
	if _, ok := b.specs[key]; !ok {
		b.order = append(b.order, key)
	}
	b.specs[key] = &spec
	return b
}

// Build resolves every registered spec into a *hoist.Node graph and returns
// the node registered under root. Dependency cycles among registered specs
// are resolved by sharing one *hoist.Node per key.
func (b *Builder) Build(root string) *hoist.Node {
	built := map[string]*hoist.Node{}

	var resolve func(key string) *hoist.Node
	resolve = func(key string) *hoist.Node {
		if n, ok := built[key]; ok {
			return n
		}
		spec, ok := b.specs[key]
		if !ok {
			panic(fmt.Sprintf("testutil: no spec registered for key %q", key))
		}

		identName := spec.IdentName
		if identName == "" {
			identName = spec.Name
		}
		reference := spec.Reference
		if reference == "" {
			reference = "1.0.0"
		}

		n := &hoist.Node{
			Name:         spec.Name,
			IdentName:    identName,
			Reference:    reference,
			Dependencies: map[string]*hoist.Node{},
			PeerNames:    map[string]struct{}{},
		}
		built[key] = n

		for _, peer := range spec.PeerNames {
			n.PeerNames[peer] = struct{}{}
		}
		for edgeName, depKey := range spec.Dependencies {
			n.Dependencies[edgeName] = resolve(depKey)
		}
		return n
	}

	return resolve(root)
}
