package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(42)
	b := FromUint64(17)
	sum := Add(a, b)
	require.True(t, Equal(Sub(sum, b), a))
}

func TestInverseZeroFails(t *testing.T) {
	_, err := Inverse(Zero())
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestInverseRoundTrip(t *testing.T) {
	a := FromUint64(12345)
	inv, err := Inverse(a)
	require.NoError(t, err)
	require.True(t, Equal(Mul(a, inv), One()))
}

func TestLtCanonicalOrder(t *testing.T) {
	require.True(t, Lt(FromUint64(3), FromUint64(4)))
	require.False(t, Lt(FromUint64(4), FromUint64(4)))
	require.False(t, Lt(FromUint64(5), FromUint64(4)))
}

func TestNegOneIsRMinusOne(t *testing.T) {
	require.True(t, Equal(Add(NegOne(), One()), Zero()))
}

func TestBitsLERoundTrip(t *testing.T) {
	e := FromUint64(0b10110)
	bits, err := BitsLE(e, 8)
	require.NoError(t, err)
	require.True(t, Equal(FromBitsLE(bits), e))
}

func TestBitsLEDoesNotFit(t *testing.T) {
	e := FromUint64(1 << 10)
	_, err := BitsLE(e, 8)
	require.ErrorIs(t, err, ErrDoesNotFit)
}

func TestTrimTakesLowBits(t *testing.T) {
	e := FromUint64(0b110101)
	require.True(t, Equal(Trim(e, 4), FromUint64(0b0101)))
}

func TestBytesBERoundTrip(t *testing.T) {
	e := FromUint64(0xdeadbeef)
	b := e.BytesBE()
	decoded, err := From32BytesBE(b[:])
	require.NoError(t, err)
	require.True(t, Equal(decoded, e))
}

func TestFrom32BytesBERejectsNonCanonical(t *testing.T) {
	over := new(big.Int).Add(fieldModulus(), big.NewInt(1))
	b := make([]byte, 32)
	over.FillBytes(b)
	_, err := From32BytesBE(b)
	require.ErrorIs(t, err, ErrNotInField)
}

func TestParseHex(t *testing.T) {
	e, err := ParseHex("0x2a")
	require.NoError(t, err)
	require.True(t, Equal(e, FromUint64(42)))
}

func fieldModulus() *big.Int {
	// r-1 plus 1: derive r from NegOne + 1 rather than re-importing fr,
	// keeping this test file's dependency surface to the field package.
	return new(big.Int).Add(NegOne().BigInt(), big.NewInt(1))
}
