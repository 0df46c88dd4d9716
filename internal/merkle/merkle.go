// Package merkle implements fixed-depth Merkle authentication paths per
// spec.md §4.D: index bits and sibling hashes, least-significant bit first
// (the sibling closest to the leaf). It is grounded on
// MuriData/muri-zkproof's pkg/merkle.VerifyMerkleProof, generalized from a
// bool-slice "isRight" convention to spec.md's explicit index-bit
// convention and from a growable proof to a fixed-depth one.
package merkle

import (
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// Proof is a depth-N Merkle authentication path. IndexBits[0] is the
// sibling closest to the leaf (spec.md §3).
type Proof struct {
	IndexBits []bool
	HashPath  []field.Element
}

// Depth returns the proof's fixed depth N.
func (p Proof) Depth() int { return len(p.HashPath) }

// Index reconstructs the leaf index from the proof's index bits:
// from_le_bits(index_bits).
func (p Proof) Index() field.Element {
	return field.FromBitsLE(p.IndexBits)
}

// Root folds leaf up the authentication path: at level i, hashing is
// H₂(left, right) with (left, right) = (current, sibling) if
// index_bits[i] = 0, else (sibling, current).
func (p Proof) Root(leaf field.Element) field.Element {
	current := leaf
	for i := 0; i < p.Depth(); i++ {
		sibling := p.HashPath[i]
		if p.IndexBits[i] {
			current = poseidon.Compress2(sibling, current)
		} else {
			current = poseidon.Compress2(current, sibling)
		}
	}
	return current
}

// Verify reports whether leaf authenticates against root under this proof.
func (p Proof) Verify(leaf, root field.Element) bool {
	return field.Equal(p.Root(leaf), root)
}

// EmptyHashes precomputes the zero-subtree hash chain used by an auxiliary
// sparse Merkle tree whose empty leaf is 0: emptyHashes[0] is H₂(0,0), the
// node one level above two empty leaves, and emptyHashes[i] =
// H₂(emptyHashes[i-1], emptyHashes[i-1]) up to the given depth, so
// emptyHashes[i] is the root of an all-empty subtree of height i+1
// (spec.md §6's "Merkle convention"). Grounded on
// MuriData/muri-zkproof's pkg/merkle.PrecomputeZeroHashes.
func EmptyHashes(depth int) []field.Element {
	hashes := make([]field.Element, depth+1)
	hashes[0] = poseidon.Compress2(field.Zero(), field.Zero())
	for i := 1; i <= depth; i++ {
		hashes[i] = poseidon.Compress2(hashes[i-1], hashes[i-1])
	}
	return hashes
}

// Update verifies that oldLeaf authenticates against oldRoot, then returns
// the root obtained by replacing oldLeaf with newLeaf along the same path.
// Siblings are presumed unchanged: sound only because the caller guarantees
// no two updates in one block touch overlapping paths (spec.md §4.D — the
// producer's responsibility, not something this function can check).
func (p Proof) Update(oldLeaf, newLeaf, oldRoot field.Element) (field.Element, error) {
	if !p.Verify(oldLeaf, oldRoot) {
		return field.Element{}, ErrProofDoesNotMatchRoot
	}
	return p.Root(newLeaf), nil
}
