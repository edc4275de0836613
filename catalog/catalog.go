// Package catalog performs structural validation of a number-type shape
// before construction, and maintains a table of named standard shapes.
// It plays the same role for number-type configurations that the
// teacher's tools/lint.go plays for a parsed assembly program: walk a
// static description and collect severity-tagged issues, and the role
// tools/xref.go plays for symbols: a named lookup table other callers
// (tests, the CLI's -preset flag) can reference by name.
package catalog

import (
	"fmt"

	"github.com/strand-systems/universal/integer"
)

// Severity mirrors the teacher's LintLevel.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Issue is a single validation finding, mirroring the teacher's
// LintIssue (minus line/column, which has no analogue for a shape
// description).
type Issue struct {
	Severity Severity
	Message  string
	Code     string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s [%s]", i.Severity, i.Message, i.Code)
}

// Variant identifies which of the module's number-type families a Shape
// describes.
type Variant int

const (
	VariantInteger Variant = iota
	VariantFixedPoint
	VariantPosit
	VariantLns
)

func (v Variant) String() string {
	switch v {
	case VariantInteger:
		return "integer"
	case VariantFixedPoint:
		return "fixedpoint"
	case VariantPosit:
		return "posit"
	case VariantLns:
		return "lns"
	default:
		return "unknown"
	}
}

// Shape is a number-type configuration prior to construction: the
// (N, R/E/F, Kind) tuple spec.md §3 states invariants over.
type Shape struct {
	Name        string
	Variant     Variant
	N           int
	R           int          // FixedPoint fractional bits
	E           int          // Posit exponent-field width
	F           int          // Lns fractional exponent bits
	IntegerKind integer.Kind // Integer-variant subset policy
}

// Validate performs the analogous structural check tools/lint.go does
// for a parsed program, on a Shape before any BlockStore is allocated.
func Validate(s Shape) []Issue {
	var issues []Issue

	if s.N < 1 {
		issues = append(issues, Issue{SeverityError, "N must be >= 1", "N_TOO_SMALL"})
		return issues
	}

	switch s.Variant {
	case VariantInteger:
		if s.IntegerKind != integer.Integer && s.N < 1 {
			issues = append(issues, Issue{SeverityError, "Natural/Whole kinds require N >= 1", "INTEGER_KIND_WIDTH"})
		}

	case VariantFixedPoint:
		if s.R < 0 {
			issues = append(issues, Issue{SeverityError, "R must be >= 0", "FIXEDPOINT_R_NEGATIVE"})
		}
		if s.N < s.R {
			issues = append(issues, Issue{SeverityError, "N must be >= R", "FIXEDPOINT_N_LT_R"})
		}
		if s.R == 0 {
			issues = append(issues, Issue{SeverityInfo, "R=0 degenerates to a plain integer", "FIXEDPOINT_R_ZERO"})
		}

	case VariantPosit:
		if s.N < 2 {
			issues = append(issues, Issue{SeverityError, "N must be >= 2", "POSIT_N_TOO_SMALL"})
		}
		if s.E < 0 {
			issues = append(issues, Issue{SeverityError, "E must be >= 0", "POSIT_E_NEGATIVE"})
		}
		if s.E > s.N-1 {
			issues = append(issues, Issue{SeverityError, "E must be <= N-1", "POSIT_E_TOO_WIDE"})
		}

	case VariantLns:
		if s.N < 2 {
			issues = append(issues, Issue{SeverityError, "N must be >= 2", "LNS_N_TOO_SMALL"})
		}
		if s.F < 0 {
			issues = append(issues, Issue{SeverityError, "F must be >= 0", "LNS_F_NEGATIVE"})
		}
		if s.F > s.N-1 {
			issues = append(issues, Issue{SeverityError, "F must be <= N-1", "LNS_F_TOO_WIDE"})
		}

	default:
		issues = append(issues, Issue{SeverityError, "unrecognised variant", "UNKNOWN_VARIANT"})
	}

	return issues
}

// HasErrors reports whether any issue in the slice is SeverityError.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// WellKnown returns the cross-reference table of named standard shapes,
// the way tools/xref.go builds a table of symbols — here, a table of
// shapes the CLI's -preset flag and the test suite can look up by name.
func WellKnown() map[string]Shape {
	return map[string]Shape{
		"Posit8_0":  {Name: "Posit8_0", Variant: VariantPosit, N: 8, E: 0},
		"Posit16_1": {Name: "Posit16_1", Variant: VariantPosit, N: 16, E: 1},
		"Posit32_2": {Name: "Posit32_2", Variant: VariantPosit, N: 32, E: 2},
		"Quarter":   {Name: "Quarter", Variant: VariantFixedPoint, N: 8, R: 4},
		"Half":      {Name: "Half", Variant: VariantFixedPoint, N: 16, R: 8},
	}
}

// Lookup finds a named well-known shape.
func Lookup(name string) (Shape, bool) {
	s, ok := WellKnown()[name]
	return s, ok
}
