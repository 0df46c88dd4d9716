// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package rollup

import "github.com/rollupzk/statecore/internal/field"

// PublicInput is the tuple canonicalized into the Keccak-256 public-input
// hash (spec.md §4.I): the previous and new tree-pair commitments, the
// wall-clock value, and the random-oracle window in effect for this block.
type PublicInput struct {
	OldRoot field.Element
	NewRoot field.Element
	Now     field.Element
	Oracle  RandomOracle
}

// Witness is everything the verifier needs besides pub_hash itself
// (spec.md §6): the public tuple, the two Root records whose hashes must
// match OldRoot/NewRoot, and the block of operations transforming one into
// the other.
type Witness struct {
	Public        PublicInput
	OldRootRecord Root
	NewRootRecord Root
	Block         Block
}
