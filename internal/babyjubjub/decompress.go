package babyjubjub

import (
	"github.com/rollupzk/statecore/internal/field"
)

// DecompressSubgroup recovers the unique prime-order-subgroup point with
// x-coordinate x, per spec.md §4.C:
//
//  1. solve a·x² + y² = 1 + d·x²·y² for y — since twisted-Edwards negation
//     is (x,y) ↦ (-x,y), not (x,y) ↦ (x,-y), the two roots ±y generally sit
//     at different points that are NOT group inverses of each other, so
//     they need not share the same order;
//  2. of the two, keep the one whose scalar multiplication by the subgroup
//     order l lands on the identity — i.e. the root with no component
//     outside the prime-order subgroup.
//
// A packed x with neither root in the subgroup (including x not on the
// curve at all) is rejected. This is the functional reading of §4.C
// consistent with §8's decompression property (decompressing the
// x-coordinate of [k]·B8 must reproduce that exact point for arbitrary k):
// a literal "output [8]·candidate, require its x to still equal the input"
// third step would reject nearly every genuine subgroup point, since 8·P
// only fixes P's x-coordinate for a handful of low-order exceptions — see
// DESIGN.md.
func DecompressSubgroup(x field.Element) (Point, error) {
	x2 := field.Square(x)
	den, err := field.Inverse(field.Sub(field.One(), field.Mul(curveD, x2)))
	if err != nil {
		return Point{}, ErrNotOnCurve
	}
	y2 := field.Mul(field.Sub(field.One(), field.Mul(curveA, x2)), den)

	y, ok := field.Sqrt(y2)
	if !ok {
		return Point{}, ErrNotOnCurve
	}

	sawOnCurve := false
	for _, candY := range [2]field.Element{y, field.Neg(y)} {
		candidate := Point{X: x, Y: candY}
		if !candidate.IsOnCurve() {
			continue
		}
		sawOnCurve = true
		if ScalarMul(candidate, Order()).Equal(Identity()) {
			return candidate, nil
		}
	}
	if !sawOnCurve {
		return Point{}, ErrNotOnCurve
	}
	return Point{}, ErrNotInSubgroup
}
