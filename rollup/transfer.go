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

// TransferTx is the witnessed transfer instruction (spec.md §4.E).
type TransferTx struct {
	SenderIndex   field.Element
	ReceiverIndex field.Element
	ReceiverKey   field.Element
	Amount        field.Element
	Nonce         field.Element
}

// Hash returns Poseidon2([sender_index, receiver_index, receiver_key, amount, nonce]).
func (t TransferTx) Hash() field.Element {
	return poseidon.HashRecord(t.SenderIndex, t.ReceiverIndex, t.ReceiverKey, t.Amount, t.Nonce)
}

// TransferSlot bundles a transfer tx with the assets needed to check and
// apply it: both parties' accounts and Merkle proofs, plus the signature
// authorizing it.
type TransferSlot struct {
	Tx              TransferTx
	ProofSender     merkle.Proof
	ProofReceiver   merkle.Proof
	AccountSender   Account
	AccountReceiver Account
	Signature       babyjubjub.SignaturePacked
}

// ApplyTransfer checks and applies a single transfer slot against accRoot,
// returning the updated root. A blank slot (signature.a = 0) is a
// structural no-op: accRoot is returned unchanged (spec.md §4.E, §9).
func ApplyTransfer(slot TransferSlot, accRoot field.Element) (field.Element, error) {
	if slot.Signature.IsBlank() {
		return accRoot, nil
	}

	tx := slot.Tx
	sender := slot.AccountSender
	receiver := slot.AccountReceiver

	if !slot.Signature.Verify(tx.Hash()) {
		return field.Element{}, ErrBadSignature
	}
	if field.Lt(sender.Balance, tx.Amount) {
		return field.Element{}, fmt.Errorf("%w: sender balance below transfer amount", ErrInsufficientFunds)
	}
	newReceiverBalance := field.Add(receiver.Balance, tx.Amount)
	if field.Lt(newReceiverBalance, receiver.Balance) {
		return field.Element{}, fmt.Errorf("%w: receiver balance addition wraps", ErrInsufficientFunds)
	}
	if !(field.Equal(receiver.Key, tx.ReceiverKey) || receiver.Key.IsZero()) {
		return field.Element{}, fmt.Errorf("%w: receiver key mismatch", ErrUnauthorized)
	}
	if !field.Equal(sender.Key, slot.Signature.A) {
		return field.Element{}, fmt.Errorf("%w: sender key does not match signer", ErrUnauthorized)
	}
	if !field.Equal(tx.SenderIndex, slot.ProofSender.Index()) {
		return field.Element{}, fmt.Errorf("%w: sender index does not match proof", ErrUnauthorized)
	}
	if !field.Equal(tx.ReceiverIndex, slot.ProofReceiver.Index()) {
		return field.Element{}, fmt.Errorf("%w: receiver index does not match proof", ErrUnauthorized)
	}
	if field.Equal(tx.SenderIndex, tx.ReceiverIndex) {
		return field.Element{}, fmt.Errorf("%w: self-transfer", ErrUnauthorized)
	}
	if !field.Equal(sender.Nonce, tx.Nonce) {
		return field.Element{}, fmt.Errorf("%w: stale sender nonce", ErrUnauthorized)
	}

	newSenderBalance := field.Sub(sender.Balance, tx.Amount)
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
	newReceiver := Account{
		Key:               tx.ReceiverKey,
		Balance:           newReceiverBalance,
		Nonce:             receiver.Nonce,
		RandomOracleNonce: receiver.RandomOracleNonce,
	}

	root1, err := slot.ProofSender.Update(sender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return field.Element{}, fmt.Errorf("%w: sender leg: %w", ErrMerkleInconsistent, err)
	}
	root2, err := slot.ProofReceiver.Update(receiver.Hash(), newReceiver.Hash(), root1)
	if err != nil {
		return field.Element{}, fmt.Errorf("%w: receiver leg: %w", ErrMerkleInconsistent, err)
	}
	return root2, nil
}
