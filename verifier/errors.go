package verifier

import "errors"

var (
	// ErrPublicInputMismatch is spec.md §7's "public-input mismatch" class:
	// the recomputed digest disagrees with the supplied pub_hash.
	ErrPublicInputMismatch = errors.New("verifier: recomputed public-input hash does not match pub_hash")

	// ErrRootRecordMismatch fires when a witnessed Root record's hash does
	// not match the old_root/new_root half of the public tuple.
	ErrRootRecordMismatch = errors.New("verifier: root record hash does not match public root")

	// ErrFinalRootMismatch fires when applying the block to the old roots
	// does not land on the witnessed new roots.
	ErrFinalRootMismatch = errors.New("verifier: block application does not reach the witnessed new roots")
)
