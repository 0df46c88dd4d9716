package bookkeeper_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rollupzk/statecore/bookkeeper"
	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/poseidon"
	"github.com/rollupzk/statecore/pubinput"
	"github.com/rollupzk/statecore/rollup"
	"github.com/rollupzk/statecore/verifier"
)

func signTx(sk, r *big.Int, msg field.Element) (babyjubjub.SignaturePacked, field.Element) {
	a := babyjubjub.ScalarMul(babyjubjub.Base(), sk)
	r8 := babyjubjub.ScalarMul(babyjubjub.Base(), r)
	h := poseidon.Hash6([6]field.Element{r8.X, r8.Y, a.X, a.Y, msg, field.Zero()})

	s := new(big.Int).Mul(h.BigInt(), sk)
	s.Add(s, r)
	s.Mod(s, babyjubjub.Order())

	return babyjubjub.SignaturePacked{A: a.X, S: field.FromBigInt(s), R8: r8.X}, a.X
}

func TestBuildBlockWitnessTransferVerifies(t *testing.T) {
	accounts := bookkeeper.NewAccountStore(2)
	files := bookkeeper.NewFileStore(2)

	tx := rollup.TransferTx{
		SenderIndex:   field.FromUint64(0),
		ReceiverIndex: field.FromUint64(1),
		ReceiverKey:   field.FromUint64(2),
		Amount:        field.FromUint64(10),
		Nonce:         field.Zero(),
	}
	sig, pubX := signTx(big.NewInt(42), big.NewInt(84), tx.Hash())

	require.NoError(t, accounts.Set(0, rollup.Account{Key: pubX, Balance: field.FromUint64(100)}))
	require.NoError(t, accounts.Set(1, rollup.Account{Key: field.FromUint64(2), Balance: field.FromUint64(5)}))

	witness, err := bookkeeper.BuildBlockWitness(
		accounts, files,
		field.FromUint64(1000), rollup.RandomOracle{},
		[]bookkeeper.PendingTransfer{{SenderIndex: 0, ReceiverIndex: 1, Tx: tx, Signature: sig}},
		nil, nil,
	)
	require.NoError(t, err)

	pubHash := pubinput.Hash(witness.Public)
	require.NoError(t, verifier.Verify(pubHash, witness))

	senderAfter, err := accounts.Get(0)
	require.NoError(t, err)
	require.True(t, field.Equal(senderAfter.Balance, field.FromUint64(90)))

	receiverAfter, err := accounts.Get(1)
	require.NoError(t, err)
	require.True(t, field.Equal(receiverAfter.Balance, field.FromUint64(15)))
}

func TestBuildBlockWitnessAllBlankRoundTrips(t *testing.T) {
	accounts := bookkeeper.NewAccountStore(2)
	files := bookkeeper.NewFileStore(2)

	witness, err := bookkeeper.BuildBlockWitness(
		accounts, files,
		field.FromUint64(1000), rollup.RandomOracle{},
		nil, nil, nil,
	)
	require.NoError(t, err)
	require.True(t, field.Equal(witness.Public.OldRoot, witness.Public.NewRoot))

	pubHash := pubinput.Hash(witness.Public)
	require.NoError(t, verifier.Verify(pubHash, witness))
}
