// Package field wraps the BN254 scalar field so the rest of the verifier
// never touches gnark-crypto's fr.Element directly. Every value here is
// canonical: the unique representative in [0, r) that spec.md's `lt` and
// byte-serialization rules are defined over.
package field

import (
	"errors"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrNotInField is returned when a byte slice or big.Int does not represent
// a canonical element (only relevant to the strict decoders; FromBigInt/
// FromBigIntBytes below always reduce mod r like fr.Element does, matching how a
// circuit's field arithmetic is emulated in Go).
var ErrNotInField = errors.New("field: value is not a canonical field element")

// ErrDoesNotFit is returned by BitsLE when a value needs more than the
// requested number of bits to represent, mirroring the circuit-side
// decomposition gadget's failure mode.
var ErrDoesNotFit = errors.New("field: element does not fit in requested bit width")

// ErrNotInvertible is returned by Inverse on the zero element.
var ErrNotInvertible = errors.New("field: zero has no multiplicative inverse")

// Element is a canonical BN254 scalar-field value.
type Element struct {
	inner fr.Element
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.inner.SetOne()
	return e
}

// NegOne returns r-1, used as the "no match" sentinel by RandomOracle.GetNonce.
func NegOne() Element {
	var e Element
	e.inner.SetOne()
	e.inner.Neg(&e.inner)
	return e
}

// FromUint64 builds an Element from a small non-negative integer.
func FromUint64(v uint64) Element {
	var e Element
	e.inner.SetUint64(v)
	return e
}

// FromBigInt reduces a big.Int modulo r, matching how the circuit treats an
// out-of-range witness value: silently reduced, never rejected here (the
// caller-facing validation, e.g. "canonical" checks, is done by From32BytesBE
// for wire-format inputs where out-of-range bytes are a protocol violation).
func FromBigInt(v *big.Int) Element {
	var e Element
	e.inner.SetBigInt(v)
	return e
}

// From32BytesBE decodes the canonical 32-byte big-endian encoding from
// spec.md §6. It rejects encodings that are not the canonical representative
// (i.e. >= r), since the wire format is not supposed to carry reducible
// values.
func From32BytesBE(b []byte) (Element, error) {
	if len(b) != 32 {
		return Element{}, ErrNotInField
	}
	var bi big.Int
	bi.SetBytes(b)
	if bi.Cmp(fr.Modulus()) >= 0 {
		return Element{}, ErrNotInField
	}
	var e Element
	e.inner.SetBigInt(&bi)
	return e, nil
}

// FromBigIntBytes reduces an arbitrary big-endian byte slice modulo r. Unlike
// From32BytesBE it never rejects its input — it is used to fold a hash
// digest (e.g. Poseidon2's Merkle-Damgard output, or the Keccak-256 digest
// in pubinput) into a field element, exactly as spec.md §4.I specifies for
// the public-input hash.
func FromBigIntBytes(b []byte) Element {
	bi := new(big.Int).SetBytes(b)
	return FromBigInt(bi)
}

// ParseHex decodes a "0x..."-prefixed (or bare) hexadecimal integer
// literal, reducing it modulo r like FromBigInt. It is used by
// cmd/rollup-verify's JSON fixture loader, where field elements are
// written as hex strings for readability rather than raw 32-byte blobs.
func ParseHex(s string) (Element, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	bi, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return Element{}, ErrNotInField
	}
	return FromBigInt(bi), nil
}

// BytesBE returns the canonical 32-byte big-endian encoding (left-padded
// with zero), per spec.md §4.A / §6.
func (e Element) BytesBE() [32]byte {
	return e.inner.Bytes()
}

// BigInt returns the canonical integer representative in [0, r).
func (e Element) BigInt() *big.Int {
	var bi big.Int
	e.inner.BigInt(&bi)
	return &bi
}

// Add returns a+b.
func Add(a, b Element) Element {
	var e Element
	e.inner.Add(&a.inner, &b.inner)
	return e
}

// Sub returns a-b.
func Sub(a, b Element) Element {
	var e Element
	e.inner.Sub(&a.inner, &b.inner)
	return e
}

// Mul returns a*b.
func Mul(a, b Element) Element {
	var e Element
	e.inner.Mul(&a.inner, &b.inner)
	return e
}

// Neg returns -a.
func Neg(a Element) Element {
	var e Element
	e.inner.Neg(&a.inner)
	return e
}

// Inverse returns a^-1, failing on zero per spec.md §4.A.
func Inverse(a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, ErrNotInvertible
	}
	var e Element
	e.inner.Inverse(&a.inner)
	return e, nil
}

// Square returns a*a.
func Square(a Element) Element {
	var e Element
	e.inner.Square(&a.inner)
	return e
}

// Sqrt returns a square root of a and true, or the zero value and false if a
// is not a quadratic residue. Used by babyjubjub subgroup decompression.
func Sqrt(a Element) (Element, bool) {
	var e Element
	if e.inner.Sqrt(&a.inner) == nil {
		return Element{}, false
	}
	return e, true
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.inner.IsZero()
}

// Equal reports whether a and b are the same canonical value.
func Equal(a, b Element) bool {
	return a.inner.Equal(&b.inner)
}

// Lt reports whether a < b as canonical integers in [0, r), per spec.md's
// "lt" primitive (§4.A). This is NOT field-order comparison in any
// cryptographic sense — it is the plain integer order on representatives.
func Lt(a, b Element) bool {
	return a.inner.Cmp(&b.inner) < 0
}

// BitsLE decomposes e into exactly n bits, least-significant first, failing
// if e needs more than n bits to represent (spec.md §4.A).
func BitsLE(e Element, n int) ([]bool, error) {
	bi := e.BigInt()
	if bi.BitLen() > n {
		return nil, ErrDoesNotFit
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = bi.Bit(i) == 1
	}
	return bits, nil
}

// FromBitsLE reconstructs Σ b_i·2^i from a little-endian bit slice.
func FromBitsLE(bits []bool) Element {
	bi := new(big.Int)
	for i := len(bits) - 1; i >= 0; i-- {
		bi.Lsh(bi, 1)
		if bits[i] {
			bi.SetBit(bi, 0, 1)
		}
	}
	return FromBigInt(bi)
}

// Trim returns the low n bits of e as a field element: trim(f, n) =
// from_le_bits(le_bits(f, n)). Unlike BitsLE, Trim never fails — it truncates
// rather than rejecting, matching spec.md §4.A's `trim` (used by the mining
// rule's index-hash check, which intentionally works on a windowed slice of
// bits rather than validating the full width).
func Trim(e Element, n int) Element {
	bi := e.BigInt()
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))
	bi.And(bi, mask)
	return FromBigInt(bi)
}
