// Package triple implements Triple: the normalised (sign, scale,
// significand-with-hidden-bit) staging type used for posit add/mul/div.
// Internally fixed at uint64 limbs — significand widths here are bounded
// by host float precision plus a practically configured posit's N, well
// under 64*k for any realistic shape.
package triple

import (
	"math/bits"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/round"
)

// Op selects which operation a Triple's significand buffer is sized for,
// since each algorithm needs different extra bits (spec §4.6).
type Op int

const (
	// Rep holds exactly F bits — a plain decoded or about-to-encode value.
	Rep Op = iota
	// OpAdd carries rounding-margin bits above F to absorb a carry out of
	// the hidden bit during alignment.
	OpAdd
	// OpMul holds up to 2F bits — the full double-width product.
	OpMul
	// OpDiv holds F+pad bits of alignment room before a restoring divide.
	OpDiv
)

// Kind classifies a Triple the way a posit's own reserved codes do.
type Kind int

const (
	KindZero Kind = iota
	KindNormal
	KindInf
	KindNaN
)

// Triple is the normalised (sign, scale, significand) working value spec
// §3 describes: Normal triples satisfy 1.0 <= |value| < 2.0 relative to
// Scale, except transiently mid-Add where the significand may carry into
// the integer bit (the caller renormalises before returning).
type Triple struct {
	Sign bool
	Scale int64
	Kind  Kind
	// Sig is the significand buffer, hidden bit at position F (for Op
	// Rep/OpAdd) or 2F (for OpMul), fraction bits below it.
	Sig *block.Store[uint64]
	F   int
	op  Op
}

// NewRep constructs a Normal Rep-width Triple from (sign, scale, fraction
// bits below the hidden bit, fraction width F). The hidden bit is always
// set at position F.
func NewRep(sign bool, scale int64, fraction uint64, f int) Triple {
	sig := block.New[uint64](f+1, block.Unsigned)
	sig.SetBits(fraction)
	sig.SetBit(f, true)
	return Triple{Sign: sign, Scale: scale, Kind: KindNormal, Sig: sig, F: f, op: Rep}
}

// Zero constructs a KindZero Triple with the given sign carried through
// (spec §3: "Zero and NaN have no meaningful sign in comparison but carry
// the bit through").
func Zero(sign bool, f int) Triple {
	return Triple{Sign: sign, Kind: KindZero, Sig: block.New[uint64](f+1, block.Unsigned), F: f, op: Rep}
}

// NaN constructs a reserved-code Triple (posit NaR / lns NaN, depending
// on caller context).
func NaN(f int) Triple {
	return Triple{Kind: KindNaN, Sig: block.New[uint64](f+1, block.Unsigned), F: f, op: Rep}
}

// IsZero, IsNaN report the reserved-code classifications.
func (t Triple) IsZero() bool { return t.Kind == KindZero }
func (t Triple) IsNaN() bool  { return t.Kind == KindNaN }

type storeBits struct{ s *block.Store[uint64] }

func (sb storeBits) Bit(i int) bool { return sb.s.GetBit(i) }

// alignShiftRight right-shifts sig by k bits, preserving sticky
// information in bit 0 rather than discarding it (spec §4.6's
// "sticky-preserving" alignment shift).
func alignShiftRight(sig *block.Store[uint64], k int) *block.Store[uint64] {
	if k <= 0 {
		return sig.Clone()
	}
	sticky := false
	for i := 0; i < k && i < sig.Bits(); i++ {
		if sig.GetBit(i) {
			sticky = true
			break
		}
	}
	out := sig.Clone()
	out.ShiftRightArith(k)
	if sticky {
		out.SetBit(0, true)
	}
	return out
}

func leadingZeros(sig *block.Store[uint64]) int {
	for i := sig.Bits() - 1; i >= 0; i-- {
		if sig.GetBit(i) {
			return sig.Bits() - 1 - i
		}
	}
	return sig.Bits()
}

// Add computes a+b per spec §4.6: align scales by shifting the
// smaller-scaled operand's significand right (sticky-preserving); equal
// signs add and renormalise on carry-out; opposite signs subtract the
// smaller magnitude from the larger and renormalise by counting leading
// zeros.
func Add(a, b Triple) Triple {
	if a.IsNaN() || b.IsNaN() {
		return NaN(a.F)
	}
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}

	f := a.F
	width := f + 2 // rounding-margin bit above the hidden bit.

	hi, lo := a, b
	if lo.Scale > hi.Scale {
		hi, lo = lo, hi
	}
	shift := int(hi.Scale - lo.Scale)

	hiSig := widen(hi.Sig, width)
	loSig := widen(lo.Sig, width)
	loSig = alignShiftRight(loSig, shift)

	var resultSign bool
	var resultSig *block.Store[uint64]
	var scale int64

	if hi.Sign == lo.Sign {
		resultSig = hiSig.Add(loSig)
		resultSign = hi.Sign
		scale = hi.Scale
		if resultSig.GetBit(width - 1) {
			resultSig = alignShiftRight(resultSig, 1)
			scale++
		}
	} else {
		cmp := hiSig.Compare(loSig)
		if cmp == 0 {
			return Zero(false, f)
		}
		big, small := hiSig, loSig
		resultSign = hi.Sign
		if cmp < 0 {
			big, small = loSig, hiSig
			resultSign = lo.Sign
		}
		resultSig = big.Sub(small)
		scale = hi.Scale
		lz := leadingZeros(resultSig) - (width - 1 - f)
		if lz > 0 {
			resultSig.ShiftLeft(lz)
			scale -= int64(lz)
		}
	}

	return Triple{Sign: resultSign, Scale: scale, Kind: KindNormal, Sig: narrow(resultSig, f), F: f, op: Rep}
}

// Mul computes a*b: scales sum, fractions multiply into a 2F-wide
// product, sign XORs; a post-multiply normalisation shifts down one bit
// if the product's hidden-bit position carried (spec §4.6).
func Mul(a, b Triple) Triple {
	if a.IsNaN() || b.IsNaN() {
		return NaN(a.F)
	}
	if a.IsZero() || b.IsZero() {
		return Zero(a.Sign != b.Sign, a.F)
	}

	f := a.F
	prodWidth := 2*f + 2
	prod := mulSig(a.Sig, b.Sig, prodWidth)
	scale := a.Scale + b.Scale

	// Hidden bits of both operands sit at position f; their product's
	// hidden-equivalent bit sits at position 2f. If the carry pushed it
	// to 2f+1, shift down one and bump scale.
	if prod.GetBit(2*f + 1) {
		prod = alignShiftRight(prod, 1)
		scale++
	}

	rounded := roundToFraction(prod, 2*f, f)
	return Triple{Sign: a.Sign != b.Sign, Scale: scale, Kind: KindNormal, Sig: rounded, F: f, op: Rep}
}

// Div computes a/b via restoring long division over F+pad bits (spec
// §4.6): scales subtract, signs XOR.
func Div(a, b Triple) Triple {
	if a.IsNaN() || b.IsNaN() {
		return NaN(a.F)
	}
	if b.IsZero() {
		return NaN(a.F)
	}
	if a.IsZero() {
		return Zero(a.Sign != b.Sign, a.F)
	}

	f := a.F
	pad := f + 4
	width := f + 1 + pad

	numer := widen(a.Sig, width)
	numer.ShiftLeft(pad)
	denom := widen(b.Sig, width)

	q := block.New[uint64](width, block.Unsigned)
	rem := block.New[uint64](width, block.Unsigned)
	for i := width - 1; i >= 0; i-- {
		rem.ShiftLeft(1)
		rem.SetBit(0, numer.GetBit(i))
		if rem.Compare(denom) >= 0 {
			rem = rem.Sub(denom)
			q.SetBit(i, true)
		}
	}

	scale := a.Scale - b.Scale
	// The quotient carries pad fractional bits: locate its leading 1, shift
	// so it lands at position f, and fold the offset from pad into scale.
	lead := -1
	for i := width - 1; i >= 0; i-- {
		if q.GetBit(i) {
			lead = i
			break
		}
	}
	if lead < 0 {
		return Zero(a.Sign != b.Sign, f)
	}
	if lead > f {
		q = alignShiftRight(q, lead-f)
	} else if lead < f {
		q.ShiftLeft(f - lead)
	}
	scale += int64(lead - pad)

	return Triple{Sign: a.Sign != b.Sign, Scale: scale, Kind: KindNormal, Sig: narrow(q, f), F: f, op: Rep}
}

func widen(s *block.Store[uint64], width int) *block.Store[uint64] {
	out := block.New[uint64](width, block.Unsigned)
	for i := 0; i < s.Bits() && i < width; i++ {
		out.SetBit(i, s.GetBit(i))
	}
	return out
}

func narrow(s *block.Store[uint64], f int) *block.Store[uint64] {
	out := block.New[uint64](f+1, block.Unsigned)
	for i := 0; i < out.Bits(); i++ {
		out.SetBit(i, s.GetBit(i))
	}
	return out
}

func mulSig(a, b *block.Store[uint64], width int) *block.Store[uint64] {
	la, lb := a.LimbCount(), b.LimbCount()
	acc := make([]uint64, la+lb+1)
	for i := 0; i < la; i++ {
		ai := a.GetLimb(i)
		if ai == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < lb; j++ {
			bj := b.GetLimb(j)
			hi, lo := bits.Mul64(ai, bj)
			sum, c1 := bits.Add64(acc[i+j], lo, 0)
			sum, c2 := bits.Add64(sum, carry, 0)
			acc[i+j] = sum
			carry = hi + c1 + c2
		}
		k := i + lb
		for carry != 0 {
			sum, c := bits.Add64(acc[k], carry, 0)
			acc[k] = sum
			carry = c
			k++
		}
	}
	out := block.New[uint64](width, block.Unsigned)
	for i := 0; i < out.LimbCount() && i < len(acc); i++ {
		out.SetLimb(i, acc[i])
	}
	return out
}

// roundToFraction rounds a wide significand (hidden bit at position
// hiddenAt) down to f fraction bits using the shared guard/round/sticky
// rule (spec §4.8), returning an (f+1)-bit buffer with the hidden bit at
// position f.
func roundToFraction(sig *block.Store[uint64], hiddenAt, f int) *block.Store[uint64] {
	shift := hiddenAt - f
	if shift <= 0 {
		return widen(sig, f+1)
	}
	up := round.NearestEven(storeBits{sig}, shift)
	out := sig.Clone()
	out.ShiftRightArith(shift)
	if up {
		one := block.New[uint64](out.Bits(), block.Unsigned)
		one.SetBit(0, true)
		out = out.Add(one)
	}
	return narrow(out, f)
}
