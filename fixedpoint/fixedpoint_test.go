package fixedpoint_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/internal/nerr"
)

func TestFromFloatRoundTrip(t *testing.T) {
	f := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 3.25)
	require.InDelta(t, 3.25, f.ToFloat64(), 1e-6)
}

func TestAddSubIdentityToBlockStore(t *testing.T) {
	a := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 1.5)
	b := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 0.25)
	sum := a.Add(b)
	require.InDelta(t, 1.75, sum.ToFloat64(), 1e-6)
}

func TestMulRoundsToNearest(t *testing.T) {
	a := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 1.5)
	b := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 2.0)
	prod := a.Mul(b)
	require.InDelta(t, 3.0, prod.ToFloat64(), 1e-4)
}

func TestMulSaturatesOnOverflow(t *testing.T) {
	a := fixedpoint.FromFloat64[uint8](8, 2, fixedpoint.Saturating, nerr.Throw, 7.0)
	b := fixedpoint.FromFloat64[uint8](8, 2, fixedpoint.Saturating, nerr.Throw, 7.0)
	prod := a.Mul(b)
	require.Greater(t, prod.ToFloat64(), 0.0, "saturated product must stay positive, not wrap negative")
}

func TestDivRestoresScale(t *testing.T) {
	a := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 6.0)
	b := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 2.0)
	q, err := a.Div(b)
	require.NoError(t, err)
	require.InDelta(t, 3.0, q.ToFloat64(), 1e-3)
}

func TestDivByZeroReportsError(t *testing.T) {
	a := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 6.0)
	zero := fixedpoint.New[uint32](32, 16, fixedpoint.Modulo, nerr.Throw)
	_, err := a.Div(zero)
	require.Error(t, err)
}

// TestDivRoundsUsingRemainderSticky exercises a division whose quotient
// bits alone look like an exact tie (guard=1, lsb=0, no sticky from the
// truncated quotient itself) but whose discarded remainder makes the true
// result strictly closer to the next grid point. a=0.75, b=5.0 at Q2
// (granularity 0.25): true a/b=0.15, which must round to 0.25, not 0.0 —
// the remainder's inexactness has to feed the round decision.
func TestDivRoundsUsingRemainderSticky(t *testing.T) {
	a := fixedpoint.FromFloat64[uint8](8, 2, fixedpoint.Modulo, nerr.Throw, 0.75)
	b := fixedpoint.FromFloat64[uint8](8, 2, fixedpoint.Modulo, nerr.Throw, 5.0)
	q, err := a.Div(b)
	require.NoError(t, err)
	require.InDelta(t, 0.25, q.ToFloat64(), 1e-9)
}

func TestSaturatingDivideUnsupported(t *testing.T) {
	a := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Saturating, nerr.Throw, 6.0)
	b := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Saturating, nerr.Throw, 2.0)
	_, err := a.Div(b)
	require.Error(t, err)
}

func TestTruncateFloorRound(t *testing.T) {
	f := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, -1.75)
	require.Equal(t, int64(-1), f.Truncate())
	require.Equal(t, int64(-2), f.Floor())
	require.Equal(t, int64(-2), f.Round())
	require.True(t, math.Abs(f.Frac()-(-0.75)) < 1e-3)
}
