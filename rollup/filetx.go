// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package rollup

import (
	"fmt"

	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// FilePrice is spec.md §6's fixed per-time-unit storage fee.
var FilePrice = field.One()

// FileTx is the witnessed file-storage-payment instruction (spec.md §4.F).
type FileTx struct {
	SenderIndex  field.Element
	DataIndex    field.Element
	TimeInterval field.Element
	Data         field.Element
	Nonce        field.Element
}

// Hash returns Poseidon2([sender_index, data_index, time_interval, data, nonce]).
func (t FileTx) Hash() field.Element {
	return poseidon.HashRecord(t.SenderIndex, t.DataIndex, t.TimeInterval, t.Data, t.Nonce)
}

// FileSlot bundles a file tx with the assets needed to check and apply it.
type FileSlot struct {
	Tx            FileTx
	ProofSender   merkle.Proof
	ProofFile     merkle.Proof
	AccountSender Account
	File          File
	Signature     babyjubjub.SignaturePacked
}

// ApplyFile checks and applies a single file slot against (accRoot,
// dataRoot) at wall-clock now, returning the updated roots. A blank slot
// is a structural no-op.
func ApplyFile(slot FileSlot, accRoot, dataRoot, now field.Element) (field.Element, field.Element, error) {
	if slot.Signature.IsBlank() {
		return accRoot, dataRoot, nil
	}

	tx := slot.Tx
	sender := slot.AccountSender
	file := slot.File

	fee := field.Mul(FilePrice, tx.TimeInterval)

	if !slot.Signature.Verify(tx.Hash()) {
		return field.Element{}, field.Element{}, ErrBadSignature
	}
	if field.Lt(sender.Balance, fee) {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: sender balance below file fee", ErrInsufficientFunds)
	}
	if !field.Equal(sender.Key, slot.Signature.A) {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: sender key does not match signer", ErrUnauthorized)
	}
	if !field.Equal(tx.SenderIndex, slot.ProofSender.Index()) {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: sender index does not match proof", ErrUnauthorized)
	}
	if !field.Equal(sender.Nonce, tx.Nonce) {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: stale sender nonce", ErrUnauthorized)
	}
	if !file.IsWriteable(now, sender.Key) {
		return field.Element{}, field.Element{}, ErrFileNotWriteable
	}
	if !field.Equal(tx.DataIndex, slot.ProofFile.Index()) {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: file index does not match proof", ErrUnauthorized)
	}

	newSenderBalance := field.Sub(sender.Balance, fee)
	var newSender Account
	if newSenderBalance.IsZero() {
		newSender = wipedAccount()
	} else {
		newSender = Account{
			Key:               sender.Key,
			Balance:           newSenderBalance,
			Nonce:             field.Add(tx.Nonce, field.One()),
			RandomOracleNonce: sender.RandomOracleNonce,
		}
	}

	baseExpiration := file.ExpirationTime
	if field.Lt(baseExpiration, now) {
		baseExpiration = now
	}
	newData := file.Data
	if !tx.Data.IsZero() {
		newData = tx.Data
	}
	newFile := File{
		ExpirationTime: field.Add(baseExpiration, tx.TimeInterval),
		Owner:          sender.Key,
		Data:           newData,
	}

	newAccRoot, err := slot.ProofSender.Update(sender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: sender leg: %w", ErrMerkleInconsistent, err)
	}
	newDataRoot, err := slot.ProofFile.Update(file.Hash(), newFile.Hash(), dataRoot)
	if err != nil {
		return field.Element{}, field.Element{}, fmt.Errorf("%w: file leg: %w", ErrMerkleInconsistent, err)
	}
	return newAccRoot, newDataRoot, nil
}
