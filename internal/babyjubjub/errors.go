package babyjubjub

import "errors"

var (
	// ErrNotOnCurve is returned when a candidate y does not satisfy the
	// twisted Edwards curve equation for any sign choice.
	ErrNotOnCurve = errors.New("babyjubjub: x is not the abscissa of any curve point")

	// ErrNotInSubgroup is returned when neither candidate y roots produces a
	// point of the prime subgroup order l (spec.md §4.C step 1-2).
	ErrNotInSubgroup = errors.New("babyjubjub: point is not in the prime-order subgroup")

	// ErrInvalidSignature names a failed EdDSA equation. SignaturePacked.Verify
	// does not return it: Verify reports any failure as a false result.
	ErrInvalidSignature = errors.New("babyjubjub: invalid eddsa signature")
)
