package babyjubjub

import (
	"math/big"

	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/poseidon"
)

// SignaturePacked mirrors the wire-packed EdDSA signature from spec.md §3:
// only x-coordinates are carried for the public key and the nonce point,
// since both are recovered by subgroup decompression at verification time.
// A = 0 is the sentinel marking a blank (no-op) transaction slot.
type SignaturePacked struct {
	A  field.Element // x-coordinate of the signer's public key
	S  field.Element // scalar response, canonical in [0, r)
	R8 field.Element // x-coordinate of the nonce point
}

// IsBlank reports whether this signature marks an unused block slot.
func (s SignaturePacked) IsBlank() bool {
	return s.A.IsZero()
}

// Verify checks the EdDSA-Poseidon equation from spec.md §4.C against msg:
// challenge h = Poseidon(r8.x, r8.y, a.x, a.y, msg), then
// [8·s]·B = [8]·R + [8·h]·A over Baby Jubjub. Both A and R8 are recovered
// from their x-coordinates via subgroup decompression; any decompression
// failure is itself a verification failure per spec.md §4.C ("failure at
// any check aborts the enclosing rule").
func (s SignaturePacked) Verify(msg field.Element) bool {
	a, err := DecompressSubgroup(s.A)
	if err != nil {
		return false
	}
	r8, err := DecompressSubgroup(s.R8)
	if err != nil {
		return false
	}

	h := poseidon.Hash6([6]field.Element{r8.X, r8.Y, a.X, a.Y, msg, field.Zero()})

	// The equation is evaluated over the *integer* values of s and h, not
	// their reduction modulo r — r (the BN254 scalar field) and l (Baby
	// Jubjub's subgroup order) are unrelated moduli, so folding 8·s or 8·h
	// through field arithmetic before the scalar multiplication would change
	// which point they land on.
	eightS := new(big.Int).Mul(big.NewInt(8), s.S.BigInt())
	eightH := new(big.Int).Mul(big.NewInt(8), h.BigInt())

	lhs := ScalarMul(Base(), eightS)
	rhs := Add(ScalarMulUint64(r8, 8), ScalarMul(a, eightH))
	return lhs.Equal(rhs)
}
