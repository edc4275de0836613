// Package integer implements BigInteger: a fixed-width, two's-complement
// signed integer built directly on block.Store, with schoolbook/intrinsic
// multiply and Knuth Algorithm D division.
package integer

import (
	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
)

// Kind selects which subset of integer values an operation may produce.
type Kind int

const (
	// Integer allows negatives and uses plain two's-complement semantics.
	Integer Kind = iota
	// Whole forbids zero-producing subtractions/divisions.
	Whole
	// Natural additionally forbids negative results.
	Natural
)

func (k Kind) String() string {
	switch k {
	case Whole:
		return "whole"
	case Natural:
		return "natural"
	}
	return "integer"
}

// BigInteger is an N-bit signed integer over limb type L, with a Kind
// policy and an ErrorPolicy controlling how constraint violations are
// reported.
type BigInteger[L block.Limb] struct {
	s      *block.Store[L]
	kind   Kind
	policy nerr.ErrorPolicy
}

// New allocates a zero-valued N-bit BigInteger.
func New[L block.Limb](n int, kind Kind, policy nerr.ErrorPolicy) *BigInteger[L] {
	return &BigInteger[L]{s: block.New[L](n, block.Signed), kind: kind, policy: policy}
}

// FromInt64 constructs an N-bit BigInteger from a host int64.
func FromInt64[L block.Limb](n int, kind Kind, policy nerr.ErrorPolicy, v int64) *BigInteger[L] {
	b := New[L](n, kind, policy)
	if v < 0 {
		b.s.SetBits(uint64(-v))
		b.s.TwosComplement()
	} else {
		b.s.SetBits(uint64(v))
	}
	return b
}

// Store exposes the underlying BlockStore for codecs and formatters that
// need direct bit access (e.g. litfmt).
func (b *BigInteger[L]) Store() *block.Store[L] { return b.s }

// Kind reports the integer's value-subset policy.
func (b *BigInteger[L]) Kind() Kind { return b.kind }

// Bits reports the configured bit width.
func (b *BigInteger[L]) Bits() int { return b.s.Bits() }

// IsNegative reports whether the value's sign bit is set.
func (b *BigInteger[L]) IsNegative() bool { return b.s.IsNegative() }

// Clone returns an independent copy.
func (b *BigInteger[L]) Clone() *BigInteger[L] {
	return &BigInteger[L]{s: b.s.Clone(), kind: b.kind, policy: b.policy}
}

func (b *BigInteger[L]) wrap(s *block.Store[L]) *BigInteger[L] {
	return &BigInteger[L]{s: s, kind: b.kind, policy: b.policy}
}

// enforceKind applies the Whole/Natural result constraints of spec §4.2 to
// an operation's result store, reporting through the configured
// ErrorPolicy.
func enforceKind[L block.Limb](kind Kind, policy nerr.ErrorPolicy, op string, s *block.Store[L]) error {
	if kind == Integer {
		return nil
	}
	if s.IsZero() {
		return nerr.Report(policy, op, nerr.NonRepresentableZero, "result is zero, not representable for a Whole/Natural integer")
	}
	if kind == Natural && s.IsNegative() {
		return nerr.Report(policy, op, nerr.NegativeNotAllowed, "result is negative, not representable for a Natural integer")
	}
	return nil
}

// Add returns b+other, modulo 2^N (silent wrap, per spec §4.1's BlockStore
// addition contract).
func (b *BigInteger[L]) Add(other *BigInteger[L]) *BigInteger[L] {
	return b.wrap(b.s.Add(other.s))
}

// Sub returns b-other, modulo 2^N. For Whole/Natural kinds a zero (Whole)
// or negative (Natural) result is reported through the ErrorPolicy instead
// of silently returned.
func (b *BigInteger[L]) Sub(other *BigInteger[L]) (*BigInteger[L], error) {
	res := b.wrap(b.s.Sub(other.s))
	if err := enforceKind(b.kind, b.policy, "integer.Sub", res.s); err != nil {
		return nil, err
	}
	return res, nil
}

// Compare orders b against other using BlockStore's signed/unsigned rules.
func (b *BigInteger[L]) Compare(other *BigInteger[L]) int {
	return b.s.Compare(other.s)
}

// And, Or, Xor, Not are the bitwise helpers supplemented from the original
// C++ integer's public surface (spec §7 supplemented features); they
// operate directly on the backing BlockStore.
func (b *BigInteger[L]) And(other *BigInteger[L]) *BigInteger[L] {
	out := block.New[L](b.s.Bits(), block.Signed)
	for i := 0; i < out.Bits(); i++ {
		out.SetBit(i, b.s.GetBit(i) && other.s.GetBit(i))
	}
	return b.wrap(out)
}

func (b *BigInteger[L]) Or(other *BigInteger[L]) *BigInteger[L] {
	out := block.New[L](b.s.Bits(), block.Signed)
	for i := 0; i < out.Bits(); i++ {
		out.SetBit(i, b.s.GetBit(i) || other.s.GetBit(i))
	}
	return b.wrap(out)
}

func (b *BigInteger[L]) Xor(other *BigInteger[L]) *BigInteger[L] {
	out := block.New[L](b.s.Bits(), block.Signed)
	for i := 0; i < out.Bits(); i++ {
		out.SetBit(i, b.s.GetBit(i) != other.s.GetBit(i))
	}
	return b.wrap(out)
}

func (b *BigInteger[L]) Not() *BigInteger[L] {
	out := b.s.Clone()
	out.Flip()
	return b.wrap(out)
}

// PopCount returns the number of set bits.
func (b *BigInteger[L]) PopCount() int {
	n := 0
	for i := 0; i < b.s.Bits(); i++ {
		if b.s.GetBit(i) {
			n++
		}
	}
	return n
}
