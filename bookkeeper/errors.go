package bookkeeper

import "errors"

var (
	// ErrIndexOutOfRange is returned by Get/Set for an index past the
	// tree's fixed capacity. ProofAt does not check its index.
	ErrIndexOutOfRange = errors.New("bookkeeper: index out of tree range")

	// ErrUnknownAccount names a sender/receiver index that does not resolve
	// to a real slot. No function in this package returns it;
	// BuildBlockWitness reports such an index as ErrIndexOutOfRange.
	ErrUnknownAccount = errors.New("bookkeeper: account slot not found")
)
