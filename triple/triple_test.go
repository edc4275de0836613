package triple_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/triple"
)

func TestZeroIsAbsorbingForAdd(t *testing.T) {
	z := triple.Zero(false, 8)
	a := triple.NewRep(false, 2, 0x55, 8)
	require.Equal(t, a, triple.Add(z, a))
	require.Equal(t, a, triple.Add(a, z))
}

func TestNaNPropagatesThroughAllOps(t *testing.T) {
	n := triple.NaN(8)
	a := triple.NewRep(false, 1, 0, 8)
	require.True(t, triple.Add(n, a).IsNaN())
	require.True(t, triple.Mul(n, a).IsNaN())
	require.True(t, triple.Div(n, a).IsNaN())
}

func TestMulZeroIsZero(t *testing.T) {
	z := triple.Zero(false, 8)
	a := triple.NewRep(false, 3, 0x10, 8)
	require.True(t, triple.Mul(z, a).IsZero())
}

func TestDivByZeroProducesNaN(t *testing.T) {
	z := triple.Zero(false, 8)
	a := triple.NewRep(false, 3, 0x10, 8)
	require.True(t, triple.Div(a, z).IsNaN())
}

func TestMulSignXor(t *testing.T) {
	a := triple.NewRep(false, 0, 0, 8)
	b := triple.NewRep(true, 0, 0, 8)
	prod := triple.Mul(a, b)
	require.True(t, prod.Sign)
}
