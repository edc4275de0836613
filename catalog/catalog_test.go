package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/catalog"
	"github.com/strand-systems/universal/integer"
)

func TestValidatePositRejectsTooWideExponent(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantPosit, N: 8, E: 8})
	require.True(t, catalog.HasErrors(issues))
}

func TestValidatePositAcceptsCanonicalShape(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantPosit, N: 8, E: 0})
	require.False(t, catalog.HasErrors(issues))
}

func TestValidateFixedPointRejectsRGreaterThanN(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantFixedPoint, N: 4, R: 8})
	require.True(t, catalog.HasErrors(issues))
}

func TestValidateFixedPointZeroRIsInfoOnly(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantFixedPoint, N: 8, R: 0})
	require.False(t, catalog.HasErrors(issues))
	require.NotEmpty(t, issues)
}

func TestValidateLnsRejectsTooWideF(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantLns, N: 8, F: 8})
	require.True(t, catalog.HasErrors(issues))
}

func TestValidateIntegerAcceptsNaturalKind(t *testing.T) {
	issues := catalog.Validate(catalog.Shape{Variant: catalog.VariantInteger, N: 32, IntegerKind: integer.Natural})
	require.False(t, catalog.HasErrors(issues))
}

func TestWellKnownContainsCanonicalPresets(t *testing.T) {
	shapes := catalog.WellKnown()
	require.Contains(t, shapes, "Posit8_0")
	require.Contains(t, shapes, "Posit32_2")
	require.Contains(t, shapes, "Half")
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	_, ok := catalog.Lookup("NotAShape")
	require.False(t, ok)
}
