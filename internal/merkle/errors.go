package merkle

import "errors"

// ErrProofDoesNotMatchRoot is spec.md §7's "Merkle inconsistency" class: a
// supplied authentication path does not fold up to the claimed root.
var ErrProofDoesNotMatchRoot = errors.New("merkle: proof does not verify against claimed root")
