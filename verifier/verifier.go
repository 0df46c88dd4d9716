// Package verifier implements spec.md §4.J: the top-level predicate gluing
// the public-input hash (component I) against the block driver (component
// H) and the supplied root commitments. It is the single entry point a zk
// proving backend, or a plain Go caller, invokes to accept or reject a
// witnessed state transition.
package verifier

import (
	"fmt"

	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/pubinput"
	"github.com/rollupzk/statecore/rollup"
)

// Verify checks witness against the committed pubHash. A nil error is
// accept; any non-nil error is reject and names which predicate failed —
// callers that require a strict two-outcome boolean per spec.md §7 should
// test only err == nil and discard the error's identity.
func Verify(pubHash field.Element, witness rollup.Witness) error {
	recomputed := pubinput.Hash(witness.Public)
	if !field.Equal(recomputed, pubHash) {
		return ErrPublicInputMismatch
	}

	if !field.Equal(witness.OldRootRecord.Hash(), witness.Public.OldRoot) {
		return fmt.Errorf("%w: old root", ErrRootRecordMismatch)
	}
	if !field.Equal(witness.NewRootRecord.Hash(), witness.Public.NewRoot) {
		return fmt.Errorf("%w: new root", ErrRootRecordMismatch)
	}

	// Fast-reject: check every slot's signature up front, fanned out across
	// goroutines. A block that fails here is guaranteed to fail Apply's
	// sequential pass too, so there is no point starting it.
	if err := rollup.VerifySignatures(witness.Block); err != nil {
		return err
	}

	finalAcc, finalData, err := rollup.Apply(witness.Block, witness.OldRootRecord.Acc, witness.OldRootRecord.Data, witness.Public.Now, witness.Public.Oracle)
	if err != nil {
		return err
	}

	if !field.Equal(finalAcc, witness.NewRootRecord.Acc) {
		return fmt.Errorf("%w: account root", ErrFinalRootMismatch)
	}
	if !field.Equal(finalData, witness.NewRootRecord.Data) {
		return fmt.Errorf("%w: data root", ErrFinalRootMismatch)
	}

	return nil
}
