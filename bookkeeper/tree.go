// Package bookkeeper is a supplemented, non-core feature: an in-memory
// account/file tree store and block-witness builder for tests and local
// tooling. It generalizes a single flat-state operator into a
// Poseidon2-hashed, array-backed complete binary tree that recomputes
// proofs directly against internal/merkle. Nothing in the verifier or
// rollup packages imports this package — it exists purely to hand a
// caller (a test, or a small standalone tool) a well-formed
// rollup.Witness without re-deriving Merkle bookkeeping by hand.
package bookkeeper

import (
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// tree is a complete, depth-N binary tree of leaf hashes, held fully in
// memory (2^N leaves). Index 0 of Proof.IndexBits is the leaf's own least
// significant bit, matching internal/merkle's LSB-first convention.
type tree struct {
	depth  int
	leaves []field.Element
}

// newTree creates a complete tree whose every leaf starts at emptyLeaf.
// spec.md §6's Merkle convention defines "an empty leaf is 0" for a generic
// auxiliary SMT, with H₂(0,0) one level up — but the account and file rules
// never place a literal 0 leaf: an untouched or wiped slot's leaf is always
// Account{}.Hash() or File{}.Hash(), computed the same way ApplyTransfer/
// ApplyFile compute every other leaf. AccountStore/FileStore pass that
// record type's own zero-value hash as emptyLeaf so a freshly-created store
// and a store that has just wiped a slot agree on what an empty leaf is.
func newTree(depth int, emptyLeaf field.Element) *tree {
	size := 1 << uint(depth)
	leaves := make([]field.Element, size)
	for i := range leaves {
		leaves[i] = emptyLeaf
	}
	return &tree{depth: depth, leaves: leaves}
}

func (t *tree) size() int { return len(t.leaves) }

func (t *tree) setLeafHash(index uint64, h field.Element) {
	t.leaves[index] = h
}

// root recomputes the tree root bottom-up. Bookkeeper trades recomputation
// cost for simplicity: a real node daemon would keep a sparse tree with
// pluggable storage (spec.md §1's "not re-specified here" collaborator);
// this helper is only ever used against small test-depth trees.
func (t *tree) root() field.Element {
	level := make([]field.Element, len(t.leaves))
	copy(level, t.leaves)
	for len(level) > 1 {
		next := make([]field.Element, len(level)/2)
		for i := range next {
			next[i] = poseidon.Compress2(level[2*i], level[2*i+1])
		}
		level = next
	}
	if len(level) == 0 {
		return field.Zero()
	}
	return level[0]
}

// proofAt builds the authentication path for index, LSB-first.
func (t *tree) proofAt(index uint64) merkle.Proof {
	indexBits := make([]bool, t.depth)
	hashPath := make([]field.Element, t.depth)

	level := make([]field.Element, len(t.leaves))
	copy(level, t.leaves)
	idx := index
	for d := 0; d < t.depth; d++ {
		bit := idx&1 == 1
		indexBits[d] = bit
		if bit {
			hashPath[d] = level[idx-1]
		} else {
			hashPath[d] = level[idx+1]
		}

		next := make([]field.Element, len(level)/2)
		for i := range next {
			next[i] = poseidon.Compress2(level[2*i], level[2*i+1])
		}
		level = next
		idx /= 2
	}
	return merkle.Proof{IndexBits: indexBits, HashPath: hashPath}
}
