package integer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/integer"
)

func TestAddWrapsModulo(t *testing.T) {
	a := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, 127)
	b := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, 1)
	sum := a.Add(b)
	require.True(t, sum.IsNegative(), "127+1 in 8-bit two's complement should wrap to -128")
}

func TestMulMaxnegCornerCase(t *testing.T) {
	// -128 * -1 overflows an 8-bit signed range; the low 8 bits wrap back
	// to -128, so the product must still read as negative.
	a := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, -128)
	b := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, -1)
	prod := a.Mul(b)
	require.True(t, prod.IsNegative())
}

func TestMulSmallValues(t *testing.T) {
	a := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, 12345)
	b := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, -6789)
	prod := a.Mul(b)
	want := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, 12345*-6789)
	require.Equal(t, 0, prod.Compare(want))
}

func TestDivModContractSignMatchesDividend(t *testing.T) {
	cases := []struct{ a, b int64 }{
		{17, 5}, {-17, 5}, {17, -5}, {-17, -5},
		{1, 1}, {0, 7}, {100, 3},
	}
	for _, c := range cases {
		a := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, c.a)
		b := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, c.b)
		q, r, err := a.DivMod(b)
		require.NoError(t, err)

		wantQ := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, c.a/c.b)
		wantR := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, c.a%c.b)
		require.Equalf(t, 0, q.Compare(wantQ), "quotient mismatch for %d/%d", c.a, c.b)
		require.Equalf(t, 0, r.Compare(wantR), "remainder mismatch for %d%%%d", c.a, c.b)
	}
}

func TestDivModReconstructsDividend(t *testing.T) {
	a := integer.FromInt64[uint64](64, integer.Integer, nerr.Throw, 9876543210)
	b := integer.FromInt64[uint64](64, integer.Integer, nerr.Throw, 98765)
	q, r, err := a.DivMod(b)
	require.NoError(t, err)

	recon := q.Mul(b).Add(r)
	require.Equal(t, 0, recon.Compare(a))
}

func TestDivByZeroThrows(t *testing.T) {
	a := integer.FromInt64[uint32](32, integer.Integer, nerr.Throw, 10)
	zero := integer.New[uint32](32, integer.Integer, nerr.Throw)
	_, _, err := a.DivMod(zero)
	require.Error(t, err)
	require.True(t, errors.Is(err, nerr.ErrDivideByZero))
}

func TestDivByZeroSentinelPolicyReturnsZero(t *testing.T) {
	a := integer.FromInt64[uint32](32, integer.Integer, nerr.Sentinel, 10)
	zero := integer.New[uint32](32, integer.Integer, nerr.Sentinel)
	q, r, err := a.DivMod(zero)
	require.NoError(t, err)
	require.True(t, q.Store().IsZero())
	require.True(t, r.Store().IsZero())
}

func TestNaturalSubtractionNegativeResultReports(t *testing.T) {
	a := integer.FromInt64[uint32](32, integer.Natural, nerr.Throw, 3)
	b := integer.FromInt64[uint32](32, integer.Natural, nerr.Throw, 5)
	_, err := a.Sub(b)
	require.Error(t, err)
	require.True(t, errors.Is(err, nerr.ErrNegativeNotAllowed))
}

func TestWholeSubtractionZeroResultReports(t *testing.T) {
	a := integer.FromInt64[uint32](32, integer.Whole, nerr.Throw, 5)
	b := integer.FromInt64[uint32](32, integer.Whole, nerr.Throw, 5)
	_, err := a.Sub(b)
	require.Error(t, err)
	require.True(t, errors.Is(err, nerr.ErrNonRepresentableZero))
}

func TestBitwiseOperators(t *testing.T) {
	a := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, 0x0F)
	b := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, 0x33)
	require.Equal(t, int64(0x03), mustInt64(t, a.And(b)))
	require.Equal(t, int64(0x3F), mustInt64(t, a.Or(b)))
	require.Equal(t, int64(0x3C), mustInt64(t, a.Xor(b)))
}

func TestPopCount(t *testing.T) {
	a := integer.FromInt64[uint8](8, integer.Integer, nerr.Throw, 0x0F)
	require.Equal(t, 4, a.PopCount())
}

func mustInt64(t *testing.T, b *integer.BigInteger[uint8]) int64 {
	t.Helper()
	return int64(int8(b.Store().ToUint64()))
}
