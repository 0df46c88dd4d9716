// Copyright 2020-2024 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package rollup

import (
	"fmt"
	"sync"

	"github.com/rollupzk/statecore/internal/field"
)

// Fixed block capacities from spec.md §6.
const (
	MaxTxPerBlock      = 8
	MaxFilePerBlock    = 8
	MaxMiningPerBlock  = 1
	RandomOracleSize   = 16
)

// Block is one witnessed slice of the rollup: the three sub-blocks applied
// in the fixed order transfer → file → mining (spec.md §4.H). The wall-clock
// value and random-oracle window the file and mining rules read are not
// carried here — they are part of the committed PublicInput and are passed
// into Apply directly, so there is exactly one copy of each and no way for
// a witness to run the rules against values that differ from what pubHash
// commits to.
type Block struct {
	Transfers []TransferSlot
	Files     []FileSlot
	Mines     []MiningSlot
}

// Apply sequences the three sub-blocks over (accRoot, dataRoot), returning
// the final roots. now and oracle come from the witness's PublicInput, the
// same values pubHash commits to (see verifier.Verify) — Apply has no
// independent notion of either. Within each sub-block, slots are applied
// strictly in index order — signature verification for the non-blank slots
// of the whole block may be precomputed concurrently (see
// VerifySignatures), but root threading itself is always sequential.
func Apply(b Block, accRoot, dataRoot field.Element, now field.Element, oracle RandomOracle) (field.Element, field.Element, error) {
	acc := accRoot
	data := dataRoot

	for i, slot := range b.Transfers {
		next, err := ApplyTransfer(slot, acc)
		if err != nil {
			return field.Element{}, field.Element{}, fmt.Errorf("transfer slot %d: %w", i, err)
		}
		acc = next
	}

	for i, slot := range b.Files {
		nextAcc, nextData, err := ApplyFile(slot, acc, data, now)
		if err != nil {
			return field.Element{}, field.Element{}, fmt.Errorf("file slot %d: %w", i, err)
		}
		acc, data = nextAcc, nextData
	}

	for i, slot := range b.Mines {
		next, err := ApplyMining(slot, acc, data, oracle)
		if err != nil {
			return field.Element{}, field.Element{}, fmt.Errorf("mining slot %d: %w", i, err)
		}
		acc = next
	}

	return acc, data, nil
}

// VerifySignatures runs an independent pre-pass over every non-blank slot
// in the block, checking only its EdDSA signature, fanned out across
// goroutines. It is an optional fast-reject optimization: a block that
// fails here is guaranteed to fail Apply's sequential pass too, but a
// block that passes here still has to run Apply for every other check.
// Root threading is untouched by this — VerifySignatures never mutates or
// reads a Merkle root.
func VerifySignatures(b Block) error {
	type job struct {
		label string
		ok    func() bool
	}

	var jobs []job
	for i, s := range b.Transfers {
		if s.Signature.IsBlank() {
			continue
		}
		i, s := i, s
		jobs = append(jobs, job{fmt.Sprintf("transfer slot %d", i), func() bool {
			return s.Signature.Verify(s.Tx.Hash())
		}})
	}
	for i, s := range b.Files {
		if s.Signature.IsBlank() {
			continue
		}
		i, s := i, s
		jobs = append(jobs, job{fmt.Sprintf("file slot %d", i), func() bool {
			return s.Signature.Verify(s.Tx.Hash())
		}})
	}
	for i, s := range b.Mines {
		if s.Signature.IsBlank() {
			continue
		}
		i, s := i, s
		jobs = append(jobs, job{fmt.Sprintf("mining slot %d", i), func() bool {
			return s.Signature.Verify(s.Tx.Hash())
		}})
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failure string
	)
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			if !j.ok() {
				mu.Lock()
				if failure == "" {
					failure = j.label
				}
				mu.Unlock()
			}
		}(j)
	}
	wg.Wait()

	if failure != "" {
		return fmt.Errorf("%s: %w", failure, ErrBadSignature)
	}
	return nil
}
