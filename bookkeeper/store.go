package bookkeeper

import (
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/rollup"
)

// AccountStore holds the full contents of an account tree, mirroring the
// teacher's Operator.State/AccountMap pair but keyed by slot index rather
// than by a byte-serialized public key.
type AccountStore struct {
	tree     *tree
	accounts []rollup.Account
}

// NewAccountStore creates an all-uninitialized account tree of the given
// depth: every leaf starts at Account{}.Hash(), the same hash ApplyTransfer/
// ApplyFile compute for a slot they wipe or have never touched.
func NewAccountStore(depth int) *AccountStore {
	return &AccountStore{
		tree:     newTree(depth, rollup.Account{}.Hash()),
		accounts: make([]rollup.Account, 1<<uint(depth)),
	}
}

// Get returns the account at index.
func (s *AccountStore) Get(index uint64) (rollup.Account, error) {
	if index >= uint64(len(s.accounts)) {
		return rollup.Account{}, ErrIndexOutOfRange
	}
	return s.accounts[index], nil
}

// Set writes acc at index, updating the tree.
func (s *AccountStore) Set(index uint64, acc rollup.Account) error {
	if index >= uint64(len(s.accounts)) {
		return ErrIndexOutOfRange
	}
	s.accounts[index] = acc
	s.tree.setLeafHash(index, acc.Hash())
	return nil
}

// Entries returns every account slot, index-ordered.
func (s *AccountStore) Entries() []rollup.Account {
	out := make([]rollup.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Root returns the current account tree root.
func (s *AccountStore) Root() field.Element { return s.tree.root() }

// ProofAt returns the current authentication path for index.
func (s *AccountStore) ProofAt(index uint64) merkle.Proof { return s.tree.proofAt(index) }

// FileStore holds the full contents of a file (data) tree.
type FileStore struct {
	tree  *tree
	files []rollup.File
}

// NewFileStore creates an all-erased file tree of the given depth: every
// leaf starts at File{}.Hash(), the same hash ApplyFile computes for a slot
// it has never touched.
func NewFileStore(depth int) *FileStore {
	return &FileStore{
		tree:  newTree(depth, rollup.File{}.Hash()),
		files: make([]rollup.File, 1<<uint(depth)),
	}
}

// Get returns the file at index.
func (s *FileStore) Get(index uint64) (rollup.File, error) {
	if index >= uint64(len(s.files)) {
		return rollup.File{}, ErrIndexOutOfRange
	}
	return s.files[index], nil
}

// Set writes f at index, updating the tree.
func (s *FileStore) Set(index uint64, f rollup.File) error {
	if index >= uint64(len(s.files)) {
		return ErrIndexOutOfRange
	}
	s.files[index] = f
	s.tree.setLeafHash(index, f.Hash())
	return nil
}

// Entries returns every file slot, index-ordered.
func (s *FileStore) Entries() []rollup.File {
	out := make([]rollup.File, len(s.files))
	copy(out, s.files)
	return out
}

// Root returns the current file tree root.
func (s *FileStore) Root() field.Element { return s.tree.root() }

// ProofAt returns the current authentication path for index.
func (s *FileStore) ProofAt(index uint64) merkle.Proof { return s.tree.proofAt(index) }
