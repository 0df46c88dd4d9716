// Package poseidon provides the two permutation-based hashes spec.md keeps
// deliberately separate (§4.B, §9 "EdDSA vs account hash"): Poseidon2, used
// for every Merkle node and every record hash, and the original Poseidon
// permutation, used only inside EdDSA-Poseidon signature verification
// (§4.C). Sharing one permutation between the two would break the
// no-domain-separation contract records and Merkle nodes rely on, so the two
// live in separate exported hashers rather than one parameterized function.
package poseidon

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	iden3poseidon "github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/rollupzk/statecore/internal/field"
)

// Compress2 is the 2-to-1 Merkle compression function H₂(a,b) from spec.md
// §4.D, grounded on MuriData/muri-zkproof's pkg/merkle.HashNodes: canonical
// 32-byte encodings are fed to gnark-crypto's Poseidon2 Merkle-Damgard
// sponge so a zero operand writes 32 zero bytes rather than an empty slice.
func Compress2(left, right field.Element) field.Element {
	h := poseidon2.NewMerkleDamgardHasher()
	lb := left.BytesBE()
	rb := right.BytesBE()
	h.Write(lb[:])
	h.Write(rb[:])
	return field.FromBigIntBytes(h.Sum(nil))
}

// HashRecord is the arity-k sponge used for Account, File, Root and
// transaction-hash records (k ∈ {2,...,5} depending on the record), grounded
// on pkg/crypto.DeriveCommitment's multi-Write pattern in the same repo.
func HashRecord(elements ...field.Element) field.Element {
	h := poseidon2.NewMerkleDamgardHasher()
	for _, e := range elements {
		b := e.BytesBE()
		h.Write(b[:])
	}
	return field.FromBigIntBytes(h.Sum(nil))
}

// Hash6 computes the original (non-2) Poseidon digest of exactly six field
// elements, used by babyjubjub's EdDSA-Poseidon challenge h = Poseidon(r8.x,
// r8.y, a.x, a.y, msg) — spec.md §4.C only feeds it 5 real inputs, the 6th
// slot is zero-padded capacity as is conventional for a sponge with rate 6.
//
// This is grounded on iden3/go-iden3-crypto's poseidon.Hash, the reference
// implementation of the EdDSA-Poseidon construction spec.md §4.C requires
// bit-exact interop with. gnark-crypto's BN254 build only ships Poseidon2
// (used by Compress2/HashRecord above); the original permutation's round
// constants and MDS matrix are not shipped by gnark-crypto, so unlike
// Compress2/HashRecord this cannot be built on gnark-crypto without
// inventing numbers that would
// not match the construction spec.md's known-answer vectors were generated
// against. Delegating to the canonical implementation is the only way to
// keep the two permutations genuinely distinct, as spec.md §9 requires.
func Hash6(inputs [6]field.Element) field.Element {
	args := make([]*big.Int, len(inputs))
	for i, in := range inputs {
		args[i] = in.BigInt()
	}
	h, err := iden3poseidon.Hash(args)
	if err != nil {
		// iden3poseidon.Hash only fails when len(args) > 16, which cannot
		// happen for a fixed 6-element array.
		panic("poseidon: Hash6: " + err.Error())
	}
	return field.FromBigInt(h)
}
