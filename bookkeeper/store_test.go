package bookkeeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupzk/statecore/bookkeeper"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/rollup"
)

func TestAccountStoreGetSetRoundTrip(t *testing.T) {
	s := bookkeeper.NewAccountStore(2)
	acc := rollup.Account{Key: field.FromUint64(7), Balance: field.FromUint64(100)}
	require.NoError(t, s.Set(1, acc))

	got, err := s.Get(1)
	require.NoError(t, err)
	require.True(t, field.Equal(got.Key, acc.Key))
	require.True(t, field.Equal(got.Balance, acc.Balance))
}

func TestAccountStoreOutOfRange(t *testing.T) {
	s := bookkeeper.NewAccountStore(2)
	_, err := s.Get(100)
	require.ErrorIs(t, err, bookkeeper.ErrIndexOutOfRange)
	require.ErrorIs(t, s.Set(100, rollup.Account{}), bookkeeper.ErrIndexOutOfRange)
}

func TestAccountStoreProofAuthenticatesAgainstRoot(t *testing.T) {
	s := bookkeeper.NewAccountStore(3)
	acc := rollup.Account{Key: field.FromUint64(3), Balance: field.FromUint64(9)}
	require.NoError(t, s.Set(5, acc))

	proof := s.ProofAt(5)
	require.True(t, proof.Verify(acc.Hash(), s.Root()))
	require.True(t, field.Equal(proof.Index(), field.FromUint64(5)))
}

func TestAccountStoreRootChangesOnUpdate(t *testing.T) {
	s := bookkeeper.NewAccountStore(2)
	before := s.Root()
	require.NoError(t, s.Set(0, rollup.Account{Key: field.One(), Balance: field.One()}))
	require.False(t, field.Equal(before, s.Root()))
}

func TestFileStoreGetSetRoundTrip(t *testing.T) {
	s := bookkeeper.NewFileStore(2)
	f := rollup.File{ExpirationTime: field.FromUint64(500), Owner: field.FromUint64(1)}
	require.NoError(t, s.Set(2, f))

	got, err := s.Get(2)
	require.NoError(t, err)
	require.True(t, field.Equal(got.ExpirationTime, f.ExpirationTime))

	proof := s.ProofAt(2)
	require.True(t, proof.Verify(f.Hash(), s.Root()))
}
