// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoist

import "github.com/Masterminds/semver"

// The spec leaves the ordering among equally-popular idents as an open
// question: any stable order is a valid hoist. Rather than fall back to bare
// lexical comparison - which sorts "v10.0.0" before "v9.0.0" - we prefer
// semver precedence when both references parse as versions, matching how
// the rest of the dependency-resolution ecosystem breaks these ties. Refs
// that aren't valid semver (git shas, local paths, "workspace:.") fall back
// to the lexical comparison unchanged.
func compareReferencePrecedence(a, b string) int {
	_, refA := splitLocator(a)
	_, refB := splitLocator(b)

	va, errA := semver.NewVersion(stripVirtual(refA))
	vb, errB := semver.NewVersion(stripVirtual(refB))
	if errA != nil || errB != nil {
		return 0
	}
	return va.Compare(vb)
}
