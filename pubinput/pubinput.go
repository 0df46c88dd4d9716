// Package pubinput implements spec.md §4.I's public-input hash: the single
// value tying an on-chain commitment to a witnessed state transition.
// Grounded on Consensys-gnark's backend/solidity.go, which reaches for
// sha3.NewLegacyKeccak256 whenever a hash-to-field digest needs to match
// what an on-chain (Solidity) verifier computes.
package pubinput

import (
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/rollup"
	"golang.org/x/crypto/sha3"
)

// Hash canonicalizes (old_root, new_root, now, oracle.offset, oracle.data...)
// into a flat field array of length 4+S, serializes each element to 32
// big-endian bytes, Keccak-256 hashes the concatenation, and reinterprets
// the digest as a field element modulo r.
func Hash(pub rollup.PublicInput) field.Element {
	elements := make([]field.Element, 0, 4+len(pub.Oracle.Data))
	elements = append(elements, pub.OldRoot, pub.NewRoot, pub.Now, pub.Oracle.Offset)
	elements = append(elements, pub.Oracle.Data...)

	h := sha3.NewLegacyKeccak256()
	for _, e := range elements {
		b := e.BytesBE()
		h.Write(b[:])
	}
	digest := h.Sum(nil)

	return field.FromBigIntBytes(digest)
}
