package rollup_test

import (
	"math/big"

	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// signTx is a test-only EdDSA-Poseidon signer mirroring
// SignaturePacked.Verify's cofactored equation, returning both the
// signature and the signer's public-key x-coordinate (the value stored as
// an Account.Key).
func signTx(sk, r *big.Int, msg field.Element) (babyjubjub.SignaturePacked, field.Element) {
	a := babyjubjub.ScalarMul(babyjubjub.Base(), sk)
	r8 := babyjubjub.ScalarMul(babyjubjub.Base(), r)
	h := poseidon.Hash6([6]field.Element{r8.X, r8.Y, a.X, a.Y, msg, field.Zero()})

	s := new(big.Int).Mul(h.BigInt(), sk)
	s.Add(s, r)
	s.Mod(s, babyjubjub.Order())

	return babyjubjub.SignaturePacked{A: a.X, S: field.FromBigInt(s), R8: r8.X}, a.X
}
