// Package fixedpoint implements FixedPoint(N, R, Policy, L): a BlockStore
// whose value equals its signed integer interpretation divided by 2^R.
// Multiply and divide are rounding-aware (or saturating); everything else
// is inherited unchanged from block.Store.
package fixedpoint

import (
	"math"
	"math/bits"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/internal/round"
)

// Policy selects overflow behaviour for multiply (and, in principle,
// divide — see DESIGN.md for the Saturating-divide Open Question).
type Policy int

const (
	// Modulo wraps silently on overflow, like plain BlockStore arithmetic.
	Modulo Policy = iota
	// Saturating clamps to the type's maxpos/maxneg representable value.
	Saturating
)

func (p Policy) String() string {
	if p == Saturating {
		return "saturating"
	}
	return "modulo"
}

// FixedPoint is an N-bit signed fixed-point value with R fractional bits.
type FixedPoint[L block.Limb] struct {
	s      *block.Store[L]
	r      int
	policy Policy
	ep     nerr.ErrorPolicy
}

// New allocates a zero-valued FixedPoint(N, R). N must be >= R (spec §3).
func New[L block.Limb](n, r int, policy Policy, ep nerr.ErrorPolicy) *FixedPoint[L] {
	if r > n {
		panic("fixedpoint: R must not exceed N")
	}
	return &FixedPoint[L]{s: block.New[L](n, block.Signed), r: r, policy: policy, ep: ep}
}

// FromRawBits constructs a FixedPoint directly from its N-bit two's
// complement integer representation (the caller supplies the already
// scaled value).
func FromRawBits[L block.Limb](n, r int, policy Policy, ep nerr.ErrorPolicy, raw uint64) *FixedPoint[L] {
	f := New[L](n, r, policy, ep)
	f.s.SetBits(raw)
	return f
}

// FromFloat64 converts a host float to the nearest representable
// FixedPoint value, rounding to nearest-even at the R-th fractional bit.
func FromFloat64[L block.Limb](n, r int, policy Policy, ep nerr.ErrorPolicy, v float64) *FixedPoint[L] {
	scaled := v
	for i := 0; i < r; i++ {
		scaled *= 2
	}
	whole := int64(math.RoundToEven(scaled))
	f := New[L](n, r, policy, ep)
	if whole < 0 {
		f.s.SetBits(uint64(-whole))
		f.s.TwosComplement()
	} else {
		f.s.SetBits(uint64(whole))
	}
	return f
}

// Store exposes the underlying BlockStore.
func (f *FixedPoint[L]) Store() *block.Store[L] { return f.s }

// R reports the fractional bit count.
func (f *FixedPoint[L]) R() int { return f.r }

// Bits reports the total bit width N.
func (f *FixedPoint[L]) Bits() int { return f.s.Bits() }

func (f *FixedPoint[L]) wrap(s *block.Store[L]) *FixedPoint[L] {
	return &FixedPoint[L]{s: s, r: f.r, policy: f.policy, ep: f.ep}
}

// Clone returns an independent copy.
func (f *FixedPoint[L]) Clone() *FixedPoint[L] {
	return &FixedPoint[L]{s: f.s.Clone(), r: f.r, policy: f.policy, ep: f.ep}
}

// Add, Sub, Compare are identical to BlockStore's (spec §4.3): the
// implicit scale cancels out since both operands share R.
func (f *FixedPoint[L]) Add(other *FixedPoint[L]) *FixedPoint[L] { return f.wrap(f.s.Add(other.s)) }
func (f *FixedPoint[L]) Sub(other *FixedPoint[L]) *FixedPoint[L] { return f.wrap(f.s.Sub(other.s)) }
func (f *FixedPoint[L]) Compare(other *FixedPoint[L]) int        { return f.s.Compare(other.s) }

// ToFloat64 reconstructs the represented value as a host float64.
func (f *FixedPoint[L]) ToFloat64() float64 {
	neg := f.s.IsNegative()
	mag := f.s
	if neg {
		mag = f.s.Clone()
		mag.TwosComplement()
	}
	var acc float64
	for i := mag.LimbCount() - 1; i >= 0; i-- {
		acc = acc*math.Pow(2, float64(mag.LimbBits())) + float64(mag.GetLimb(i))
	}
	for i := 0; i < f.r; i++ {
		acc /= 2
	}
	if neg {
		acc = -acc
	}
	return acc
}

func maxPosBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0) >> 1
	}
	return (uint64(1) << uint(n-1)) - 1
}

func minNegStore[L block.Limb](n int) *block.Store[L] {
	s := block.New[L](n, block.Signed)
	s.SetBit(n-1, true)
	return s
}

func maxPosStore[L block.Limb](n int) *block.Store[L] {
	s := block.New[L](n, block.Signed)
	for i := 0; i < n-1; i++ {
		s.SetBit(i, true)
	}
	return s
}

// Mul computes f*other, producing a full 2N-bit product, rounding to
// nearest-even at the R-th bit of the product (spec §4.3/§4.8), then
// shifting right by R to restore the implicit scale. Under Saturating
// policy the result clamps to maxpos/maxneg instead of wrapping.
func (f *FixedPoint[L]) Mul(other *FixedPoint[L]) *FixedPoint[L] {
	n := f.s.Bits()
	aNeg, bNeg := f.s.IsNegative(), other.s.IsNegative()
	aAbs, bAbs := absMagnitude(f.s), absMagnitude(other.s)

	wide := mulUnsigned(aAbs, bAbs)
	negResult := aNeg != bNeg

	rounded := roundAndShift(wide, f.r, false)

	out := block.New[L](n, block.Signed)
	for i := 0; i < out.LimbCount(); i++ {
		out.SetLimb(i, rounded.GetLimb(i))
	}

	if f.policy == Saturating && overflowsN(rounded, n) {
		if negResult {
			return f.wrap(minNegStore[L](n))
		}
		return f.wrap(maxPosStore[L](n))
	}

	if negResult {
		out.TwosComplement()
	}
	return f.wrap(out)
}

// overflowsN reports whether an unsigned magnitude store (wider than n
// bits) has any set bit at or above position n-1, meaning it cannot fit
// in an n-bit signed magnitude.
func overflowsN[L block.Limb](s *block.Store[L], n int) bool {
	for i := n - 1; i < s.Bits(); i++ {
		if s.GetBit(i) {
			return true
		}
	}
	return false
}

func absMagnitude[L block.Limb](s *block.Store[L]) *block.Store[L] {
	if !s.IsNegative() {
		out := block.New[L](s.Bits(), block.Unsigned)
		for i := 0; i < s.Bits(); i++ {
			out.SetBit(i, s.GetBit(i))
		}
		return out
	}
	neg := s.Clone()
	neg.TwosComplement()
	out := block.New[L](s.Bits(), block.Unsigned)
	for i := 0; i < s.Bits(); i++ {
		out.SetBit(i, neg.GetBit(i))
	}
	return out
}

// mulUnsigned is the same two-backend schoolbook/intrinsic multiply as
// integer.mulMagnitude, duplicated here (rather than exported cross-
// package) since fixedpoint's rounding step needs direct access to the
// pre-shift wide product's low bits.
func mulUnsigned[L block.Limb](a, b *block.Store[L]) *block.Store[L] {
	la, lb := a.LimbCount(), b.LimbCount()
	limbBits := a.LimbBits()
	mask := block.LimbMask(limbBits)
	acc := make([]uint64, la+lb+1)

	for i := 0; i < la; i++ {
		ai := uint64(a.GetLimb(i))
		if ai == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < lb; j++ {
			bj := uint64(b.GetLimb(j))
			if limbBits == 64 {
				hi, lo := bits.Mul64(ai, bj)
				sum, c1 := bits.Add64(acc[i+j], lo, 0)
				sum, c2 := bits.Add64(sum, carry, 0)
				acc[i+j] = sum
				carry = hi + c1 + c2
			} else {
				prod := ai*bj + carry + acc[i+j]
				acc[i+j] = prod & mask
				carry = prod >> uint(limbBits)
			}
		}
		k := i + lb
		for carry != 0 {
			sum := acc[k] + carry
			acc[k] = sum & mask
			carry = sum >> uint(limbBits)
			k++
		}
	}

	result := block.New[L](a.Bits()+b.Bits(), block.Unsigned)
	for i := 0; i < result.LimbCount() && i < len(acc); i++ {
		result.SetLimb(i, L(acc[i]))
	}
	return result
}

// storeBits adapts a block.Store to round.Bits.
type storeBits[L block.Limb] struct{ s *block.Store[L] }

func (sb storeBits[L]) Bit(i int) bool { return sb.s.GetBit(i) }

// roundAndShift applies round-to-nearest-even at bit k = r of wide, then
// shifts right by r, returning an unsigned store of wide.Bits()-r bits
// holding the rounded, rescaled magnitude. inexact folds in sticky
// information from outside wide itself (e.g. a division remainder that
// wide's own bits can't represent), since a tie that looks exact within
// wide is not a real tie once a discarded nonzero remainder is counted.
func roundAndShift[L block.Limb](wide *block.Store[L], r int, inexact bool) *block.Store[L] {
	if r == 0 {
		return wide.Clone()
	}
	bits := storeBits[L]{wide}
	shifted := wide.Clone()
	shifted.ShiftRightArith(r)
	if bits.Bit(r - 1) {
		lsb := bits.Bit(r)
		sticky := inexact || round.StickyBelow(bits, r-1)
		if lsb || sticky {
			shifted = incrementUnsigned(shifted)
		}
	}
	return shifted
}

func incrementUnsigned[L block.Limb](s *block.Store[L]) *block.Store[L] {
	out := s.Clone()
	one := block.New[L](out.Bits(), block.Unsigned)
	one.SetBit(0, true)
	return out.Add(one)
}

// Div computes f/other by scaling the dividend up by 2R (plus guard
// bits) before a plain integer divide, restoring the result's scale
// (spec §4.3). Modulo policy is fully implemented; Saturating policy is
// not yet implemented and reports nerr.ErrUnsupportedFormat, per the
// resolved Open Question in SPEC_FULL.md §6.
func (f *FixedPoint[L]) Div(other *FixedPoint[L]) (*FixedPoint[L], error) {
	if other.s.IsZero() {
		if err := nerr.Report(f.ep, "fixedpoint.Div", nerr.DivideByZero, "divisor is zero"); err != nil {
			return nil, err
		}
		return f.wrap(block.New[L](f.s.Bits(), block.Signed)), nil
	}
	if f.policy == Saturating {
		if err := nerr.Report(f.ep, "fixedpoint.Div", nerr.UnsupportedFormat, "saturating divide is not implemented"); err != nil {
			return nil, err
		}
	}

	n := f.s.Bits()
	aNeg, bNeg := f.s.IsNegative(), other.s.IsNegative()
	aAbs, bAbs := absMagnitude(f.s), absMagnitude(other.s)

	// Scale the dividend up by 2R bits (R to restore FixedPoint's own
	// scale, plus R again as guard room for the final round) before an
	// ordinary unsigned long division.
	scaled := block.New[L](n+2*f.r, block.Unsigned)
	for i := 0; i < n; i++ {
		scaled.SetBit(i+2*f.r, aAbs.GetBit(i))
	}
	divisorWide := block.New[L](n+2*f.r, block.Unsigned)
	for i := 0; i < n; i++ {
		divisorWide.SetBit(i, bAbs.GetBit(i))
	}

	q, rem := longDivideUnsigned(scaled, divisorWide)
	rounded := roundAndShift(q, f.r, !rem.IsZero())

	out := block.New[L](n, block.Signed)
	for i := 0; i < n && i < rounded.Bits(); i++ {
		out.SetBit(i, rounded.GetBit(i))
	}
	if aNeg != bNeg {
		out.TwosComplement()
	}
	return f.wrap(out), nil
}

// longDivideUnsigned performs a plain bit-at-a-time restoring division,
// adequate for FixedPoint's scaled-divide step (its operands are already
// staged into same-width unsigned buffers, unlike BigInteger's multi-limb
// Knuth D divide). It returns both quotient and remainder; the remainder
// carries the division's own inexactness and must feed the final round
// decision rather than being discarded.
func longDivideUnsigned[L block.Limb](dividend, divisor *block.Store[L]) (q, rem *block.Store[L]) {
	n := dividend.Bits()
	q = block.New[L](n, block.Unsigned)
	rem = block.New[L](n, block.Unsigned)
	for i := n - 1; i >= 0; i-- {
		rem.ShiftLeft(1)
		rem.SetBit(0, dividend.GetBit(i))
		if rem.Compare(divisor) >= 0 {
			rem = rem.Sub(divisor)
			q.SetBit(i, true)
		}
	}
	return q, rem
}

// Truncate, Round, Frac, Floor are supplemented from the original
// fixpnt's formatting accessors (SPEC_FULL.md §7).

// Truncate returns the integer part (toward zero) as a host int64.
func (f *FixedPoint[L]) Truncate() int64 {
	neg := f.s.IsNegative()
	mag := f.s.Clone()
	if neg {
		mag.TwosComplement()
	}
	mag.ShiftRightArith(f.r)
	v := int64(mag.ToUint64())
	if neg {
		v = -v
	}
	return v
}

// Floor returns the largest integer value not greater than f, as a host
// int64.
func (f *FixedPoint[L]) Floor() int64 {
	t := f.Truncate()
	if f.s.IsNegative() && !f.isFracZero() {
		return t - 1
	}
	return t
}

// Round returns the nearest integer, ties rounding away from zero.
func (f *FixedPoint[L]) Round() int64 {
	frac := f.Frac()
	t := f.Truncate()
	if frac >= 0.5 {
		return t + 1
	}
	if frac <= -0.5 {
		return t - 1
	}
	return t
}

// Frac returns the fractional part as a float64 in (-1, 1).
func (f *FixedPoint[L]) Frac() float64 {
	return f.ToFloat64() - float64(f.Truncate())
}

func (f *FixedPoint[L]) isFracZero() bool {
	for i := 0; i < f.r; i++ {
		if f.s.GetBit(i) {
			return false
		}
	}
	return true
}
