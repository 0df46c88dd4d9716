// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package rollup implements the state-transition core from spec.md §4.E-H:
// the transfer, file-storage-payment and mining rules that mutate the
// account and data Merkle trees, and the block driver that sequences them.
//
// Account and File share this package (rather than living under
// internal/babyjubjub or internal/merkle) per spec.md §9's note on cyclic
// module references: the transfer, file and mining rules all need both
// record types plus Merkle proofs plus signatures, so keeping the records
// here and passing them by value avoids an import cycle between
// per-transaction-kind files.
package rollup

import (
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// Account is a leaf of the account tree (spec.md §3). Key = 0 marks an
// uninitialized slot.
type Account struct {
	Key               field.Element
	Balance           field.Element
	Nonce             field.Element
	RandomOracleNonce field.Element
}

// Hash returns Poseidon2([key, balance, nonce, random_oracle_nonce]).
func (a Account) Hash() field.Element {
	return poseidon.HashRecord(a.Key, a.Balance, a.Nonce, a.RandomOracleNonce)
}

// IsUninitialized reports whether this slot has never been assigned an
// owner.
func (a Account) IsUninitialized() bool {
	return a.Key.IsZero()
}

// wipedAccount returns the all-zero account used to reclaim a slot whose balance
// has been drawn down to exactly zero (spec.md §4.E, §9 "nonce wipe on zero
// balance").
func wipedAccount() Account {
	return Account{}
}

// File is a leaf of the data tree (spec.md §3). Owner = 0 marks an
// erased/empty slot. Data is the root of a separate, not-materialized-here
// per-file content tree of depth K.
type File struct {
	ExpirationTime field.Element
	Owner          field.Element
	Data           field.Element
}

// Hash returns Poseidon2([expiration_time, owner, data]).
func (f File) Hash() field.Element {
	return poseidon.HashRecord(f.ExpirationTime, f.Owner, f.Data)
}

// IsWriteable reports whether sender may (re)write this file slot: the
// lease has expired, the slot is unowned, or sender already owns it
// (spec.md §4.F).
func (f File) IsWriteable(now, sender field.Element) bool {
	return field.Lt(f.ExpirationTime, now) || f.Owner.IsZero() || field.Equal(f.Owner, sender)
}

// Root is the pair of tree roots threaded through block application
// (spec.md §3).
type Root struct {
	Acc  field.Element
	Data field.Element
}

// Hash returns Poseidon2([acc, data]).
func (r Root) Hash() field.Element {
	return poseidon.HashRecord(r.Acc, r.Data)
}

// RandomOracle is a contiguous window of S public-entropy values whose
// nonces are offset, offset+1, ..., offset+S-1 (spec.md §3).
type RandomOracle struct {
	Offset field.Element
	Data   []field.Element
}

// GetNonce returns the unique offset+i with Data[i] == v, scanning the
// entire window and returning the LAST match on duplicates, or r-1 (field's
// NegOne) if no entry matches — spec.md §3 and §9's note that duplicate
// matches are a witness-malformation the block producer is responsible for,
// not something this function silently corrects.
func (o RandomOracle) GetNonce(v field.Element) field.Element {
	result := field.NegOne()
	for i, d := range o.Data {
		if field.Equal(d, v) {
			result = field.Add(o.Offset, field.FromUint64(uint64(i)))
		}
	}
	return result
}

// GetNonceStrict behaves like GetNonce but rejects a window with more than
// one matching entry, for operators who want to refuse a malformed witness
// outright (spec.md §9's "a strict implementation may assert uniqueness";
// SPEC_FULL.md §9.2 wires this to cmd/rollup-verify's --strict-oracle flag).
func (o RandomOracle) GetNonceStrict(v field.Element) (field.Element, error) {
	matches := 0
	result := field.NegOne()
	for i, d := range o.Data {
		if field.Equal(d, v) {
			matches++
			result = field.Add(o.Offset, field.FromUint64(uint64(i)))
		}
	}
	if matches > 1 {
		return field.Element{}, ErrDuplicateOracleEntry
	}
	return result, nil
}
