// Package babyjubjub implements the twisted Edwards curve and EdDSA
// verification predicate from spec.md §4.C: Baby Jubjub, cofactor 8,
// companion curve to BN254's scalar field. Point arithmetic is written
// against this module's own field.Element (so callers never reach for
// gnark-crypto's fr.Element directly). The subgroup order is read from
// gnark-crypto's native (non-circuit) twisted-edwards package; a, d and the
// B8 generator are the standard Baby Jubjub constants, written out in init
// — see DESIGN.md.
//
// Account and Signature records live in the rollup package, not here,
// following spec.md §9's note on cyclic module references: babyjubjub only
// knows about points and signatures, never about accounts.
package babyjubjub

import (
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/rollupzk/statecore/internal/field"
)

// Point is an affine Baby Jubjub point (X, Y) in this module's own field
// representation.
type Point struct {
	X, Y field.Element
}

// Identity is the twisted-Edwards neutral element (0, 1).
func Identity() Point {
	return Point{X: field.Zero(), Y: field.One()}
}

var (
	curveA     field.Element
	curveD     field.Element
	curveOrder *big.Int
	curveBase  Point
)

func init() {
	params := tedwards.GetEdwardsCurve()

	// Standard Baby Jubjub form (a = 168700, d = 168696) and its B8
	// generator; only the subgroup order is read from gnark-crypto.
	var baseXBI, baseYBI big.Int
	baseXBI.SetString("5299619240641551281634865583518297030282874472190772894086521144482721001553", 10)
	baseYBI.SetString("16950150798460657717958625567821834550301663161624707787222815936182638968203", 10)

	curveA = field.FromUint64(168700)
	curveD = field.FromUint64(168696)
	curveOrder = new(big.Int).Set(&params.Order)
	curveBase = Point{X: field.FromBigInt(&baseXBI), Y: field.FromBigInt(&baseYBI)}
}

// Base returns the canonical prime-order (order-l) generator of the standard
// curve form — the "B8" point referenced by spec.md's testable properties
// (§8.3), already cofactor-cleared.
func Base() Point { return curveBase }

// Order returns the prime subgroup order l (gnark-crypto calls it Order).
func Order() *big.Int { return new(big.Int).Set(curveOrder) }

// IsOnCurve checks a·x² + y² = 1 + d·x²·y².
func (p Point) IsOnCurve() bool {
	x2 := field.Square(p.X)
	y2 := field.Square(p.Y)
	lhs := field.Add(field.Mul(curveA, x2), y2)
	rhs := field.Add(field.One(), field.Mul(field.Mul(curveD, x2), y2))
	return field.Equal(lhs, rhs)
}

// Equal reports whether p and q are the same affine point.
func (p Point) Equal(q Point) bool {
	return field.Equal(p.X, q.X) && field.Equal(p.Y, q.Y)
}

// Add computes p+q using the twisted Edwards unified addition law.
func Add(p, q Point) Point {
	x1y2 := field.Mul(p.X, q.Y)
	y1x2 := field.Mul(p.Y, q.X)
	y1y2 := field.Mul(p.Y, q.Y)
	x1x2 := field.Mul(p.X, q.X)
	dx1x2y1y2 := field.Mul(curveD, field.Mul(x1x2, y1y2))

	xNum := field.Add(x1y2, y1x2)
	xDen := field.Add(field.One(), dx1x2y1y2)
	yNum := field.Sub(y1y2, field.Mul(curveA, x1x2))
	yDen := field.Sub(field.One(), dx1x2y1y2)

	xDenInv, err := field.Inverse(xDen)
	if err != nil {
		return Identity()
	}
	yDenInv, err := field.Inverse(yDen)
	if err != nil {
		return Identity()
	}
	return Point{X: field.Mul(xNum, xDenInv), Y: field.Mul(yNum, yDenInv)}
}

// Neg returns -p.
func Neg(p Point) Point {
	return Point{X: field.Neg(p.X), Y: p.Y}
}

// ScalarMul computes [k]·p via double-and-add over k's bit length. k may be
// any non-negative integer, including values far larger than the subgroup
// order l — the group structure makes that well-defined, matching how the
// circuit-side scalar multiplication gadgets treat an unreduced scalar.
func ScalarMul(p Point, k *big.Int) Point {
	if k.Sign() == 0 {
		return Identity()
	}
	result := Identity()
	addend := p
	kk := new(big.Int).Set(k)
	for kk.Sign() > 0 {
		if kk.Bit(0) == 1 {
			result = Add(result, addend)
		}
		addend = Add(addend, addend)
		kk.Rsh(kk, 1)
	}
	return result
}

// ScalarMulUint64 is a convenience wrapper for small fixed scalars (the
// cofactor 8, mostly).
func ScalarMulUint64(p Point, k uint64) Point {
	return ScalarMul(p, new(big.Int).SetUint64(k))
}
