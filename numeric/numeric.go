// Package numeric is the L4 surface: thin value wrappers over the L1-L3
// numeric types (integer.BigInteger, fixedpoint.FixedPoint, posit.Posit,
// lns.Lns2b) exposing arithmetic operators, comparisons, and host-type
// conversion in one uniform shape. It adds no algorithmic surface of its
// own — every operation here delegates directly to the package it wraps.
package numeric

import (
	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/lns"
	"github.com/strand-systems/universal/posit"
)

// Integer wraps integer.BigInteger.
type Integer[L block.Limb] struct{ v *integer.BigInteger[L] }

// NewInteger constructs a zero-valued Integer(N, kind).
func NewInteger[L block.Limb](n int, kind integer.Kind, policy nerr.ErrorPolicy) Integer[L] {
	return Integer[L]{v: integer.New[L](n, kind, policy)}
}

// IntegerFromInt64 constructs an Integer from a host int64.
func IntegerFromInt64[L block.Limb](n int, kind integer.Kind, policy nerr.ErrorPolicy, v int64) Integer[L] {
	return Integer[L]{v: integer.FromInt64[L](n, kind, policy, v)}
}

func (a Integer[L]) Unwrap() *integer.BigInteger[L] { return a.v }
func (a Integer[L]) Int64() int64                   { return int64(a.v.ToFloat64()) }
func (a Integer[L]) Float64() float64               { return a.v.ToFloat64() }
func (a Integer[L]) Add(b Integer[L]) Integer[L]    { return Integer[L]{v: a.v.Add(b.v)} }
func (a Integer[L]) Sub(b Integer[L]) (Integer[L], error) {
	s, err := a.v.Sub(b.v)
	return Integer[L]{v: s}, err
}
func (a Integer[L]) Mul(b Integer[L]) Integer[L] { return Integer[L]{v: a.v.Mul(b.v)} }
func (a Integer[L]) DivMod(b Integer[L]) (quotient, remainder Integer[L], err error) {
	q, r, err := a.v.DivMod(b.v)
	return Integer[L]{v: q}, Integer[L]{v: r}, err
}
func (a Integer[L]) Compare(b Integer[L]) int { return a.v.Compare(b.v) }
func (a Integer[L]) Equal(b Integer[L]) bool  { return a.Compare(b) == 0 }
func (a Integer[L]) Less(b Integer[L]) bool   { return a.Compare(b) < 0 }

// FixedPoint wraps fixedpoint.FixedPoint.
type FixedPoint[L block.Limb] struct{ v *fixedpoint.FixedPoint[L] }

// NewFixedPoint constructs a zero-valued FixedPoint(N, R).
func NewFixedPoint[L block.Limb](n, r int, policy fixedpoint.Policy, ep nerr.ErrorPolicy) FixedPoint[L] {
	return FixedPoint[L]{v: fixedpoint.New[L](n, r, policy, ep)}
}

// FixedPointFromFloat64 constructs a FixedPoint from a host float64.
func FixedPointFromFloat64[L block.Limb](n, r int, policy fixedpoint.Policy, ep nerr.ErrorPolicy, v float64) FixedPoint[L] {
	return FixedPoint[L]{v: fixedpoint.FromFloat64[L](n, r, policy, ep, v)}
}

func (a FixedPoint[L]) Unwrap() *fixedpoint.FixedPoint[L] { return a.v }
func (a FixedPoint[L]) Float64() float64                  { return a.v.ToFloat64() }
func (a FixedPoint[L]) Add(b FixedPoint[L]) FixedPoint[L] { return FixedPoint[L]{v: a.v.Add(b.v)} }
func (a FixedPoint[L]) Sub(b FixedPoint[L]) FixedPoint[L] { return FixedPoint[L]{v: a.v.Sub(b.v)} }
func (a FixedPoint[L]) Mul(b FixedPoint[L]) FixedPoint[L] { return FixedPoint[L]{v: a.v.Mul(b.v)} }
func (a FixedPoint[L]) Div(b FixedPoint[L]) (FixedPoint[L], error) {
	q, err := a.v.Div(b.v)
	return FixedPoint[L]{v: q}, err
}
func (a FixedPoint[L]) Compare(b FixedPoint[L]) int { return a.v.Compare(b.v) }
func (a FixedPoint[L]) Equal(b FixedPoint[L]) bool  { return a.Compare(b) == 0 }
func (a FixedPoint[L]) Less(b FixedPoint[L]) bool   { return a.Compare(b) < 0 }

// Posit wraps posit.Posit.
type Posit[L block.Limb] struct{ v *posit.Posit[L] }

// NewPosit constructs the zero Posit(N, E).
func NewPosit[L block.Limb](n, e int, ep nerr.ErrorPolicy) Posit[L] {
	return Posit[L]{v: posit.New[L](n, e, ep)}
}

// PositFromFloat64 constructs a Posit from a host float64.
func PositFromFloat64[L block.Limb](n, e int, ep nerr.ErrorPolicy, v float64) Posit[L] {
	return Posit[L]{v: posit.FromFloat64[L](n, e, ep, v)}
}

func (a Posit[L]) Unwrap() *posit.Posit[L] { return a.v }
func (a Posit[L]) Float64() float64        { return a.v.ToFloat64() }
func (a Posit[L]) IsNaR() bool             { return a.v.IsNaR() }
func (a Posit[L]) Add(b Posit[L]) (Posit[L], error) {
	r, err := a.v.Add(b.v)
	return Posit[L]{v: r}, err
}
func (a Posit[L]) Mul(b Posit[L]) (Posit[L], error) {
	r, err := a.v.Mul(b.v)
	return Posit[L]{v: r}, err
}
func (a Posit[L]) Div(b Posit[L]) (Posit[L], error) {
	r, err := a.v.Div(b.v)
	return Posit[L]{v: r}, err
}
func (a Posit[L]) Reciprocal() (Posit[L], error) {
	r, err := a.v.Reciprocal()
	return Posit[L]{v: r}, err
}
func (a Posit[L]) Compare(b Posit[L]) int { return a.v.Compare(b.v) }
func (a Posit[L]) Equal(b Posit[L]) bool  { return a.Compare(b) == 0 }
func (a Posit[L]) Less(b Posit[L]) bool   { return a.Compare(b) < 0 }

// Lns wraps lns.Lns2b.
type Lns[L block.Limb] struct{ v *lns.Lns2b[L] }

// NewLns constructs the zero Lns(N, F).
func NewLns[L block.Limb](n, f int, policy lns.Policy, ep nerr.ErrorPolicy) Lns[L] {
	return Lns[L]{v: lns.New[L](n, f, policy, ep)}
}

// LnsFromFloat64 constructs an Lns from a host float64.
func LnsFromFloat64[L block.Limb](n, f int, policy lns.Policy, ep nerr.ErrorPolicy, v float64) Lns[L] {
	return Lns[L]{v: lns.FromFloat64[L](n, f, policy, ep, v)}
}

func (a Lns[L]) Unwrap() *lns.Lns2b[L] { return a.v }
func (a Lns[L]) Float64() float64      { return a.v.ToFloat64() }
func (a Lns[L]) IsNaN() bool           { return a.v.IsNaN() }
func (a Lns[L]) IsZero() bool          { return a.v.IsZero() }
func (a Lns[L]) Mul(b Lns[L]) Lns[L]   { return Lns[L]{v: a.v.Mul(b.v)} }
func (a Lns[L]) Div(b Lns[L]) (Lns[L], error) {
	r, err := a.v.Div(b.v)
	return Lns[L]{v: r}, err
}
func (a Lns[L]) Add(b Lns[L]) Lns[L] { return Lns[L]{v: a.v.Add(b.v)} }
func (a Lns[L]) Sub(b Lns[L]) Lns[L] { return Lns[L]{v: a.v.Sub(b.v)} }
func (a Lns[L]) Abs() Lns[L]         { return Lns[L]{v: a.v.Abs()} }
