package rollup_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/rollup"
)

func buildFileSlot(t *testing.T, senderBalance, timeInterval, nonce uint64, now field.Element, file rollup.File) (rollup.FileSlot, field.Element, field.Element) {
	t.Helper()

	tx := rollup.FileTx{
		SenderIndex:  field.FromUint64(0),
		DataIndex:    field.FromUint64(0),
		TimeInterval: field.FromUint64(timeInterval),
		Data:         field.Zero(),
		Nonce:        field.FromUint64(nonce),
	}
	sig, pubX := signTx(big.NewInt(555), big.NewInt(777), tx.Hash())
	sender := rollup.Account{Key: pubX, Balance: field.FromUint64(senderBalance), Nonce: field.FromUint64(nonce)}

	accRoot := sender.Hash()
	dataRoot := file.Hash()

	// Single-leaf depth-0 "trees": Index() of an empty-bits proof is 0,
	// matching both tx.SenderIndex and tx.DataIndex, and Root(leaf) with no
	// levels to fold is just leaf itself.
	proofSender := merkle.Proof{}
	proofFile := merkle.Proof{}

	slot := rollup.FileSlot{
		Tx:            tx,
		ProofSender:   proofSender,
		ProofFile:     proofFile,
		AccountSender: sender,
		File:          file,
		Signature:     sig,
	}
	return slot, accRoot, dataRoot
}

func TestApplyFileSucceeds(t *testing.T) {
	now := field.FromUint64(100)
	file := rollup.File{ExpirationTime: field.Zero(), Owner: field.Zero(), Data: field.Zero()}
	slot, accRoot, dataRoot := buildFileSlot(t, 50, 10, 0, now, file)

	newAcc, newData, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.NoError(t, err)
	require.False(t, field.Equal(newAcc, accRoot))
	require.False(t, field.Equal(newData, dataRoot))
}

// TestFileFeeIsDeterministic is spec.md §8's fee-determinism property: the
// fee charged is exactly price * time_interval, independent of any other
// slot state.
func TestFileFeeIsDeterministic(t *testing.T) {
	now := field.FromUint64(100)
	file := rollup.File{}
	slot, accRoot, dataRoot := buildFileSlot(t, 1000, 7, 0, now, file)

	newAcc, _, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.NoError(t, err)

	expectedFee := field.Mul(rollup.FilePrice, field.FromUint64(7))
	expectedBalance := field.Sub(field.FromUint64(1000), expectedFee)
	newSender := rollup.Account{Key: slot.AccountSender.Key, Balance: expectedBalance, Nonce: field.One()}
	require.True(t, field.Equal(newAcc, newSender.Hash()))
}

func TestApplyFileBlankSlotIsNoop(t *testing.T) {
	accRoot := field.FromUint64(1)
	dataRoot := field.FromUint64(2)
	newAcc, newData, err := rollup.ApplyFile(rollup.FileSlot{}, accRoot, dataRoot, field.Zero())
	require.NoError(t, err)
	require.True(t, field.Equal(newAcc, accRoot))
	require.True(t, field.Equal(newData, dataRoot))
}

func TestApplyFileRejectsInsufficientFunds(t *testing.T) {
	now := field.FromUint64(100)
	file := rollup.File{}
	slot, accRoot, dataRoot := buildFileSlot(t, 3, 10, 0, now, file)
	_, _, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.ErrorIs(t, err, rollup.ErrInsufficientFunds)
}

func TestApplyFileRejectsUnwriteableFile(t *testing.T) {
	now := field.FromUint64(100)
	file := rollup.File{ExpirationTime: field.FromUint64(200), Owner: field.FromUint64(999)}
	slot, accRoot, dataRoot := buildFileSlot(t, 500, 10, 0, now, file)
	_, _, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.ErrorIs(t, err, rollup.ErrFileNotWriteable)
}

func TestApplyFileExtendsExpirationFromNowWhenLapsed(t *testing.T) {
	now := field.FromUint64(500)
	file := rollup.File{ExpirationTime: field.FromUint64(10), Owner: field.Zero()}
	slot, accRoot, dataRoot := buildFileSlot(t, 500, 20, 0, now, file)

	_, newData, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.NoError(t, err)

	expected := rollup.File{
		ExpirationTime: field.FromUint64(520),
		Owner:          slot.AccountSender.Key,
		Data:           field.Zero(),
	}
	require.True(t, field.Equal(newData, expected.Hash()))
}

func TestApplyFileRejectsBadSignature(t *testing.T) {
	now := field.FromUint64(100)
	file := rollup.File{}
	slot, accRoot, dataRoot := buildFileSlot(t, 500, 10, 0, now, file)
	slot.Signature.S = field.Add(slot.Signature.S, field.One())
	_, _, err := rollup.ApplyFile(slot, accRoot, dataRoot, now)
	require.ErrorIs(t, err, rollup.ErrBadSignature)
}
