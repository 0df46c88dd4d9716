// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package rollup

import "errors"

// Sentinel errors follow spec.md §7's taxonomy: every rule aborts with one
// of these, wrapped with %w so a caller can still walk up to the
// originating primitive (internal/merkle's ErrProofDoesNotMatchRoot) when
// needed.
var (
	// ErrBadSignature covers both a malformed (undecompressible) signature
	// and one that decompresses but fails the EdDSA equation.
	ErrBadSignature = errors.New("rollup: signature verification failed")

	// ErrUnauthorized covers a nonce mismatch or any other check that ties
	// a signed message to the wrong account.
	ErrUnauthorized = errors.New("rollup: unauthorized")

	// ErrInsufficientFunds is spec.md §4.E/§4.F's balance/fee check.
	ErrInsufficientFunds = errors.New("rollup: insufficient funds")

	// ErrMerkleInconsistent wraps internal/merkle.ErrProofDoesNotMatchRoot
	// with rule-level context.
	ErrMerkleInconsistent = errors.New("rollup: merkle proof inconsistent with claimed root")

	// ErrFileNotWriteable is spec.md §4.F's expiration/ownership check.
	ErrFileNotWriteable = errors.New("rollup: file slot not writeable by sender")

	// ErrDifficulty is spec.md §4.G's proof-of-work predicate.
	ErrDifficulty = errors.New("rollup: proof-of-work does not meet difficulty")

	// ErrStaleNonce is spec.md §4.G's mining nonce monotonicity check.
	ErrStaleNonce = errors.New("rollup: random-oracle nonce is not strictly increasing")

	// ErrDuplicateOracleEntry is returned by RandomOracle.GetNonceStrict.
	ErrDuplicateOracleEntry = errors.New("rollup: random oracle window contains a duplicate value")

	// ErrOracleValueNotFound signals GetNonce returned the r-1 sentinel.
	ErrOracleValueNotFound = errors.New("rollup: value not present in random oracle window")
)
