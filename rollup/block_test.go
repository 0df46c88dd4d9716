package rollup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/rollup"
)

// TestAllBlankBlockLeavesRootsUnchanged is spec.md §8's end-to-end
// invariant: a block whose every slot is blank (signature.a = 0) must be a
// full no-op on both trees.
func TestAllBlankBlockLeavesRootsUnchanged(t *testing.T) {
	accRoot := field.FromUint64(111)
	dataRoot := field.FromUint64(222)

	b := rollup.Block{
		Transfers: []rollup.TransferSlot{{}, {}},
		Files:     []rollup.FileSlot{{}},
		Mines:     []rollup.MiningSlot{{}},
	}

	newAcc, newData, err := rollup.Apply(b, accRoot, dataRoot, field.FromUint64(1000), rollup.RandomOracle{})
	require.NoError(t, err)
	require.True(t, field.Equal(newAcc, accRoot))
	require.True(t, field.Equal(newData, dataRoot))
}

func TestVerifySignaturesPassesOnAllBlank(t *testing.T) {
	b := rollup.Block{
		Transfers: []rollup.TransferSlot{{}},
		Files:     []rollup.FileSlot{{}},
		Mines:     []rollup.MiningSlot{{}},
	}
	require.NoError(t, rollup.VerifySignatures(b))
}

func TestApplyStopsAtFirstFailingSlot(t *testing.T) {
	sig := babyjubjub.SignaturePacked{A: field.One(), S: field.One(), R8: field.One()}
	b := rollup.Block{
		Transfers: []rollup.TransferSlot{
			{Signature: sig},
		},
	}
	_, _, err := rollup.Apply(b, field.Zero(), field.Zero(), field.Zero(), rollup.RandomOracle{})
	require.ErrorIs(t, err, rollup.ErrBadSignature)
}
