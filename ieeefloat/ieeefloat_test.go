package ieeefloat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/ieeefloat"
)

func TestClassifyZero(t *testing.T) {
	f := ieeefloat.ExtractFields64(0.0)
	require.Equal(t, ieeefloat.Zero, f.Class)
}

func TestClassifyNormalHiddenBitReattached(t *testing.T) {
	f := ieeefloat.ExtractFields64(1.5)
	require.Equal(t, ieeefloat.Normal, f.Class)
	require.NotZero(t, f.RawFraction&(uint64(1)<<52), "hidden bit must be set for Normal")
}

func TestClassifySubnormalNoHiddenBit(t *testing.T) {
	f := ieeefloat.ExtractFields64(math.SmallestNonzeroFloat64)
	require.Equal(t, ieeefloat.Subnormal, f.Class)
	require.Zero(t, f.RawFraction&(uint64(1)<<52))
}

func TestClassifyInf(t *testing.T) {
	f := ieeefloat.ExtractFields64(math.Inf(1))
	require.Equal(t, ieeefloat.Inf, f.Class)
}

func TestClassifyQNan(t *testing.T) {
	f := ieeefloat.ExtractFields64(math.NaN())
	require.Equal(t, ieeefloat.QNan, f.Class)
}

func TestUnbiasedScale(t *testing.T) {
	f := ieeefloat.ExtractFields64(4.0) // 1.0 * 2^2
	require.Equal(t, int64(2), f.UnbiasedScale())
}
