package lns_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/lns"
)

func TestFromFloatRoundTrip(t *testing.T) {
	l := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 4.0)
	require.InDelta(t, 4.0, l.ToFloat64(), 1e-3)
}

func TestZeroDetection(t *testing.T) {
	l := lns.New[uint32](32, 16, lns.Modulo, nerr.Throw)
	require.True(t, l.IsZero())
	require.Equal(t, 0.0, l.ToFloat64())
}

func TestNaNDetection(t *testing.T) {
	l := lns.NaN[uint32](32, 16, lns.Modulo, nerr.Throw)
	require.True(t, l.IsNaN())
	require.True(t, math.IsNaN(l.ToFloat64()))
}

func TestMulIsLogAddition(t *testing.T) {
	a := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 2.0)
	b := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 8.0)
	prod := a.Mul(b)
	require.InDelta(t, 16.0, prod.ToFloat64(), 1e-2)
}

func TestDivIsLogSubtraction(t *testing.T) {
	a := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 16.0)
	b := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 4.0)
	q, err := a.Div(b)
	require.NoError(t, err)
	require.InDelta(t, 4.0, q.ToFloat64(), 1e-2)
}

func TestDivByZeroReportsError(t *testing.T) {
	a := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 16.0)
	zero := lns.New[uint32](32, 16, lns.Modulo, nerr.Throw)
	_, err := a.Div(zero)
	require.Error(t, err)
}

func TestAddDefersToHostFloat(t *testing.T) {
	a := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 3.0)
	b := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 4.0)
	sum := a.Add(b)
	require.InDelta(t, 7.0, sum.ToFloat64(), 1e-2)
}

// TestMulSaturatingAvoidsNaNCollision exercises the Saturating policy
// (previously untested): clamping an overflowed negative-signed exponent
// straight to minExponent(width) produces, bit-for-bit, the reserved NaN
// code. Neither operand here is NaN or Zero, so the product must not be
// mistaken for NaN.
func TestMulSaturatingAvoidsNaNCollision(t *testing.T) {
	a := lns.New[uint8](8, 4, lns.Saturating, nerr.Throw)
	a.Store().SetBits(216) // sign=1, exponent field = two's-complement(-40, 7 bits)
	b := lns.New[uint8](8, 4, lns.Saturating, nerr.Throw)
	b.Store().SetBits(98) // sign=0, exponent field = two's-complement(-30, 7 bits)

	require.False(t, a.IsNaN())
	require.False(t, b.IsNaN())

	prod := a.Mul(b) // exponent sum -40+-30=-70, clamps to minExponent(7)=-64
	require.False(t, prod.IsNaN(), "saturated overflow must not collide with the reserved NaN code")
}

func TestDivSaturatingAvoidsNaNCollision(t *testing.T) {
	a := lns.New[uint8](8, 4, lns.Saturating, nerr.Throw)
	a.Store().SetBits(216) // sign=1, exponent field = two's-complement(-40, 7 bits)
	b := lns.New[uint8](8, 4, lns.Saturating, nerr.Throw)
	b.Store().SetBits(30) // sign=0, exponent field = 30

	q, err := a.Div(b) // exponent diff -40-30=-70, clamps to minExponent(7)=-64
	require.NoError(t, err)
	require.False(t, q.IsNaN(), "saturated overflow must not collide with the reserved NaN code")
}

func TestAbsClearsSign(t *testing.T) {
	a := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, -5.0)
	require.InDelta(t, 5.0, a.Abs().ToFloat64(), 1e-2)
}
