// Package lns implements Lns2b: a base-2 logarithmic number. Bit N-1 is
// the sign of the represented number; the remaining N-1 bits form a
// signed fixed-point exponent with F fractional bits. Multiply/divide are
// integer add/sub in log-space; add/sub defer to a host-float round-trip
// (spec §4.7's documented accuracy/throughput trade-off).
package lns

import (
	"math"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
)

// Policy selects overflow behaviour for multiply/divide, mirroring
// fixedpoint.Policy.
type Policy int

const (
	Modulo Policy = iota
	Saturating
)

func (p Policy) String() string {
	if p == Saturating {
		return "saturating"
	}
	return "modulo"
}

// Lns2b is an N-bit base-2 logarithmic number with F fractional exponent
// bits.
type Lns2b[L block.Limb] struct {
	s      *block.Store[L]
	f      int
	policy Policy
	ep     nerr.ErrorPolicy
}

// New allocates a zero-valued Lns2b(N, F) — the reserved Zero code
// (0·1·0…0, spec §3).
func New[L block.Limb](n, f int, policy Policy, ep nerr.ErrorPolicy) *Lns2b[L] {
	l := &Lns2b[L]{s: block.New[L](n, block.Signed), f: f, policy: policy, ep: ep}
	l.s.SetBit(n - 2, true) // msb of the exponent field: the Zero reserved pattern.
	return l
}

// NaN constructs the reserved NaN code (1·1·0…0).
func NaN[L block.Limb](n, f int, policy Policy, ep nerr.ErrorPolicy) *Lns2b[L] {
	l := &Lns2b[L]{s: block.New[L](n, block.Signed), f: f, policy: policy, ep: ep}
	l.s.SetBit(n-1, true)
	l.s.SetBit(n-2, true)
	return l
}

func (l *Lns2b[L]) wrap(s *block.Store[L]) *Lns2b[L] {
	return &Lns2b[L]{s: s, f: l.f, policy: l.policy, ep: l.ep}
}

// Store exposes the underlying BlockStore.
func (l *Lns2b[L]) Store() *block.Store[L] { return l.s }

// Clone returns an independent copy.
func (l *Lns2b[L]) Clone() *Lns2b[L] { return l.wrap(l.s.Clone()) }

func (l *Lns2b[L]) n() int { return l.s.Bits() }

// IsZero, IsNaN test the two reserved codes.
func (l *Lns2b[L]) IsZero() bool {
	return !l.s.GetBit(l.n()-1) && l.s.GetBit(l.n()-2) && l.expOnly() == 0
}

func (l *Lns2b[L]) IsNaN() bool {
	return l.s.GetBit(l.n()-1) && l.s.GetBit(l.n()-2) && l.expOnly() == 0
}

func (l *Lns2b[L]) expOnly() int64 {
	var v int64
	for i := 0; i < l.n()-2; i++ {
		if l.s.GetBit(i) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// sign reports the represented value's sign bit (bit N-1).
func (l *Lns2b[L]) sign() bool { return l.s.GetBit(l.n() - 1) }

// exponent extracts the signed fixed-point exponent from bits [0, N-1).
func (l *Lns2b[L]) exponent() int64 {
	width := l.n() - 1
	var v int64
	for i := 0; i < width; i++ {
		if l.s.GetBit(i) {
			v |= int64(1) << uint(i)
		}
	}
	signBit := int64(1) << uint(width-1)
	if v&signBit != 0 {
		v -= int64(1) << uint(width)
	}
	return v
}

func (l *Lns2b[L]) withExponent(sign bool, exp int64) *Lns2b[L] {
	width := l.n() - 1
	out := block.New[L](l.n(), block.Signed)
	out.SetBits(uint64(exp) & ((uint64(1) << uint(width)) - 1))
	out.SetBit(l.n()-1, sign)
	return l.wrap(out)
}

func maxExponent(width int) int64 { return (int64(1) << uint(width-1)) - 1 }
func minExponent(width int) int64 { return -(int64(1) << uint(width-1)) }

// clampToRange saturates v into [minExponent(width), maxExponent(width)],
// then nudges a negative-signed clamp away from minExponent(width): that
// exact (sign=1, exponent=minExponent) bit pattern is bit-for-bit the
// reserved NaN code, so a saturated result must land one step short of it
// rather than colliding with NaN.
func clampToRange(width int, sign bool, v int64) int64 {
	if v > maxExponent(width) {
		v = maxExponent(width)
	} else if v < minExponent(width) {
		v = minExponent(width)
	}
	if sign && v == minExponent(width) {
		v++
	}
	return v
}

// Mul extracts exponent parts and adds them, XORing signs (spec §4.7).
// Under Saturating policy, overflow clamps to maxpos/maxneg instead of
// wrapping; the sign of an overflowed result is never allowed to collide
// with the reserved NaN code.
func (l *Lns2b[L]) Mul(other *Lns2b[L]) *Lns2b[L] {
	if l.IsNaN() || other.IsNaN() {
		return NaN[L](l.n(), l.f, l.policy, l.ep)
	}
	if l.IsZero() || other.IsZero() {
		return New[L](l.n(), l.f, l.policy, l.ep)
	}
	width := l.n() - 1
	sum := l.exponent() + other.exponent()
	sign := l.sign() != other.sign()
	if l.policy == Saturating {
		sum = clampToRange(width, sign, sum)
	}
	return l.withExponent(sign, sum)
}

// Div extracts exponent parts and subtracts, XORing signs.
func (l *Lns2b[L]) Div(other *Lns2b[L]) (*Lns2b[L], error) {
	if l.IsNaN() || other.IsNaN() {
		return NaN[L](l.n(), l.f, l.policy, l.ep), nil
	}
	if other.IsZero() {
		if err := nerr.Report(l.ep, "lns.Div", nerr.DivideByZero, "divisor is zero"); err != nil {
			return nil, err
		}
		return NaN[L](l.n(), l.f, l.policy, l.ep), nil
	}
	if l.IsZero() {
		return New[L](l.n(), l.f, l.policy, l.ep), nil
	}
	width := l.n() - 1
	diff := l.exponent() - other.exponent()
	sign := l.sign() != other.sign()
	if l.policy == Saturating {
		diff = clampToRange(width, sign, diff)
	}
	return l.withExponent(sign, diff), nil
}

// ToFloat64 reconstructs the represented value: (-1)^sign * 2^(exponent/2^F).
func (l *Lns2b[L]) ToFloat64() float64 {
	if l.IsZero() {
		return 0
	}
	if l.IsNaN() {
		return math.NaN()
	}
	scale := float64(l.exponent()) / math.Pow(2, float64(l.f))
	v := math.Pow(2, scale)
	if l.sign() {
		v = -v
	}
	return v
}

// FromFloat64 constructs an Lns2b from a host float via log2.
func FromFloat64[L block.Limb](n, f int, policy Policy, ep nerr.ErrorPolicy, v float64) *Lns2b[L] {
	if math.IsNaN(v) {
		return NaN[L](n, f, policy, ep)
	}
	if v == 0 {
		return New[L](n, f, policy, ep)
	}
	sign := v < 0
	logv := math.Log2(math.Abs(v))
	exp := int64(math.RoundToEven(logv * math.Pow(2, float64(f))))
	l := &Lns2b[L]{s: block.New[L](n, block.Signed), f: f, policy: policy, ep: ep}
	return l.withExponent(sign, exp)
}

// Add, Sub defer to a host-float round-trip per spec §4.7's documented
// trade-off: this sacrifices some precision and throughput against the
// complexity of an in-log-space add, which the spec notes explicitly as
// an open improvement rather than something to re-architect here.
func (l *Lns2b[L]) Add(other *Lns2b[L]) *Lns2b[L] {
	sum := l.ToFloat64() + other.ToFloat64()
	return FromFloat64[L](l.n(), l.f, l.policy, l.ep, sum)
}

func (l *Lns2b[L]) Sub(other *Lns2b[L]) *Lns2b[L] {
	diff := l.ToFloat64() - other.ToFloat64()
	return FromFloat64[L](l.n(), l.f, l.policy, l.ep, diff)
}

// Abs returns the value with its sign bit cleared (supplemented from the
// original's state-query surface, SPEC_FULL.md §7).
func (l *Lns2b[L]) Abs() *Lns2b[L] {
	if l.IsZero() || l.IsNaN() {
		return l.Clone()
	}
	return l.withExponent(false, l.exponent())
}
