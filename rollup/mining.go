// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package rollup

import (
	"fmt"
	"math/big"

	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// Fixed parameters from spec.md §6.
const (
	AccountTreeDepth = 10
	FileTreeDepth    = 10
	FileContentDepth = 10 // K
)

// MiningReward is spec.md §4.G's fixed block reward.
var MiningReward = field.FromUint64(1024)

// RevDifficulty is spec.md §4.G's fixed difficulty target, 2^244.
var RevDifficulty = field.FromBigInt(new(big.Int).Lsh(big.NewInt(1), 244))

// fileContentIndexScale is 2^K, the fixed-point shift combining the
// in-file chunk index with the file index into one PoW commitment index.
var fileContentIndexScale = field.FromBigInt(new(big.Int).Lsh(big.NewInt(1), FileContentDepth))

// MiningTx is the witnessed mining instruction (spec.md §4.G).
type MiningTx struct {
	SenderIndex       field.Element
	Nonce             field.Element
	RandomOracleNonce field.Element
	MiningNonce       field.Element
}

// Hash returns Poseidon2([sender_index, nonce, random_oracle_nonce, mining_nonce]).
func (t MiningTx) Hash() field.Element {
	return poseidon.HashRecord(t.SenderIndex, t.Nonce, t.RandomOracleNonce, t.MiningNonce)
}

// MiningSlot bundles a mining tx with the assets needed to check and apply
// it: the miner's account and proof, the random-oracle value it consumed,
// and the (file, chunk) pair its proof-of-work opened.
type MiningSlot struct {
	Tx                MiningTx
	ProofSender       merkle.Proof
	AccountSender     Account
	RandomOracleValue field.Element
	ProofFile         merkle.Proof
	File              File
	ProofDataInFile   merkle.Proof
	DataInFile        field.Element
	Signature         babyjubjub.SignaturePacked
}

// ApplyMining checks and applies a single mining slot against accRoot,
// given the current dataRoot (read-only: mining never mutates the data
// tree, it only authenticates against it) and the block's random oracle
// window. A blank slot is a structural no-op — but per spec.md §9's
// "mining slot inversion" note, the corrected policy is to return the
// pre-update accRoot on blank and the post-update root on non-blank, the
// opposite of the source's inverted behavior.
func ApplyMining(slot MiningSlot, accRoot, dataRoot field.Element, oracle RandomOracle) (field.Element, error) {
	if slot.Signature.IsBlank() {
		return accRoot, nil
	}

	tx := slot.Tx
	sender := slot.AccountSender

	if !slot.Signature.Verify(tx.Hash()) {
		return field.Element{}, ErrBadSignature
	}
	newBalance := field.Add(sender.Balance, MiningReward)
	if field.Lt(newBalance, sender.Balance) {
		return field.Element{}, fmt.Errorf("%w: mining reward addition wraps", ErrInsufficientFunds)
	}
	if !field.Equal(sender.Key, slot.Signature.A) {
		return field.Element{}, fmt.Errorf("%w: sender key does not match signer", ErrUnauthorized)
	}
	if !field.Equal(tx.SenderIndex, slot.ProofSender.Index()) {
		return field.Element{}, fmt.Errorf("%w: sender index does not match proof", ErrUnauthorized)
	}
	if !field.Equal(sender.Nonce, tx.Nonce) {
		return field.Element{}, fmt.Errorf("%w: stale sender nonce", ErrUnauthorized)
	}
	oracleNonce := oracle.GetNonce(slot.RandomOracleValue)
	if field.Equal(oracleNonce, field.NegOne()) {
		return field.Element{}, ErrOracleValueNotFound
	}
	if !field.Equal(oracleNonce, tx.RandomOracleNonce) {
		return field.Element{}, fmt.Errorf("%w: random oracle value/nonce mismatch", ErrUnauthorized)
	}
	if !field.Lt(sender.RandomOracleNonce, tx.RandomOracleNonce) {
		return field.Element{}, ErrStaleNonce
	}
	if !slot.ProofFile.Verify(slot.File.Hash(), dataRoot) {
		return field.Element{}, fmt.Errorf("%w: file leg", ErrMerkleInconsistent)
	}
	if !slot.ProofDataInFile.Verify(slot.DataInFile, slot.File.Data) {
		return field.Element{}, fmt.Errorf("%w: chunk leg", ErrMerkleInconsistent)
	}

	bruteforceHash := poseidon.HashRecord(slot.Signature.A, slot.RandomOracleValue, tx.MiningNonce)
	indexHash := poseidon.HashRecord(bruteforceHash)

	index := field.Add(slot.ProofDataInFile.Index(), field.Mul(fileContentIndexScale, slot.ProofFile.Index()))
	trimmedIndexHash := field.Trim(indexHash, FileTreeDepth+FileContentDepth)
	if !field.Equal(index, trimmedIndexHash) {
		return field.Element{}, fmt.Errorf("%w: opened index does not match committed index", ErrDifficulty)
	}
	if !field.Lt(poseidon.HashRecord(bruteforceHash, slot.DataInFile), RevDifficulty) {
		return field.Element{}, fmt.Errorf("%w: hash does not meet difficulty target", ErrDifficulty)
	}

	newSender := Account{
		Key:               sender.Key,
		Balance:           newBalance,
		Nonce:             field.Add(tx.Nonce, field.One()),
		RandomOracleNonce: tx.RandomOracleNonce,
	}

	newAccRoot, err := slot.ProofSender.Update(sender.Hash(), newSender.Hash(), accRoot)
	if err != nil {
		return field.Element{}, fmt.Errorf("%w: sender leg: %w", ErrMerkleInconsistent, err)
	}
	return newAccRoot, nil
}
