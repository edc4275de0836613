package posit

import (
	"math"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/ieeefloat"
	"github.com/strand-systems/universal/internal/nerr"
)

// Posit is the L4 surface type: a thin value wrapper around Codec plus
// the N-bit code itself, exposing arithmetic operators, comparisons, and
// host-float conversion.
type Posit[L block.Limb] struct {
	codec Codec[L]
	bits  *block.Store[L]
	ep    nerr.ErrorPolicy
}

// New constructs a zero-valued Posit(N, E).
func New[L block.Limb](n, e int, ep nerr.ErrorPolicy) *Posit[L] {
	return &Posit[L]{codec: NewCodec[L](n, e), bits: block.New[L](n, block.Signed), ep: ep}
}

// NaRValue constructs the reserved not-a-real code.
func NaRValue[L block.Limb](n, e int, ep nerr.ErrorPolicy) *Posit[L] {
	p := New[L](n, e, ep)
	p.bits.SetBit(n-1, true)
	return p
}

func (p *Posit[L]) wrap(bits *block.Store[L]) *Posit[L] {
	return &Posit[L]{codec: p.codec, bits: bits, ep: p.ep}
}

// Bits exposes the raw code.
func (p *Posit[L]) Bits() *block.Store[L] { return p.bits }

// Clone returns an independent copy.
func (p *Posit[L]) Clone() *Posit[L] { return p.wrap(p.bits.Clone()) }

func (p *Posit[L]) decoded() Decoded { return p.codec.Decode(p.bits) }

// IsNaR, IsZero report the two reserved codes.
func (p *Posit[L]) IsNaR() bool  { return p.decoded().Kind == KindNaR }
func (p *Posit[L]) IsZero() bool { return p.decoded().Kind == KindZero }

// Sign reports the value's sign bit (meaningless for Zero/NaR, carried
// through per spec §3 the way Triple's Sign field is).
func (p *Posit[L]) Sign() bool { return p.bits.GetBit(p.bits.Bits() - 1) }

// RegimeBits, ExponentBits, FractionBits, Scale are the supplemented
// component-query accessors from the original's public surface
// (SPEC_FULL.md §7): cheap decode-only reads of the derived field
// widths.
func (p *Posit[L]) RegimeBits() int   { return p.decoded().RegimeBits }
func (p *Posit[L]) ExponentBits() int { return p.decoded().ExponentBits }
func (p *Posit[L]) FractionBits() int { return p.decoded().FBits }
func (p *Posit[L]) Scale() int64      { return p.decoded().Scale }

// Increment, Decrement step the raw bit pattern by +1/-1 (two's
// complement successor/predecessor), mirroring the original's
// NextPosit/PriorPosit. Intentionally wraps at the maxpos/NaR boundary
// (maxpos+1 is NaR, NaR+1 is the most negative value) —
// these are for enumeration over the posit's ordered code space, not
// arithmetic, so wraparound is the documented, intended behaviour
// (SPEC_FULL.md §6).
func (p *Posit[L]) Increment() *Posit[L] {
	one := block.New[L](p.bits.Bits(), block.Signed)
	one.SetBit(0, true)
	return p.wrap(p.bits.Add(one))
}

func (p *Posit[L]) Decrement() *Posit[L] {
	one := block.New[L](p.bits.Bits(), block.Signed)
	one.SetBit(0, true)
	return p.wrap(p.bits.Sub(one))
}

// FromFloat64 converts a host float64 to the nearest posit under
// round-to-nearest-even. NaN and Inf map to NaR on entry, per spec §4.5's
// failure semantics: "No host float NaN or Inf survives a round-trip."
func FromFloat64[L block.Limb](n, e int, ep nerr.ErrorPolicy, v float64) *Posit[L] {
	p := New[L](n, e, ep)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.bits.SetBit(n-1, true)
		return p
	}
	if v == 0 {
		return p
	}

	sign := v < 0
	mag := math.Abs(v)
	frac, exp := math.Frexp(mag) // mag = frac * 2^exp, 0.5 <= frac < 1
	scale := int64(exp) - 1
	frac *= 2 // renormalise to 1 <= frac < 2

	fracBits := 64
	fracStore := block.New[uint64](fracBits, block.Unsigned)
	rem := frac - 1 // fractional part below the hidden bit
	for i := fracBits - 1; i >= 0; i-- {
		rem *= 2
		if rem >= 1 {
			fracStore.SetBit(i, true)
			rem -= 1
		}
	}

	p.bits = p.codec.Encode(sign, scale, fracStore)
	return p
}

// ToFloat64 reconstructs the represented value as a host float64, per
// spec §4.5: value = (-1)^sign * 2^scale * (1 + fraction/2^fbits).
func (p *Posit[L]) ToFloat64() float64 {
	d := p.decoded()
	switch d.Kind {
	case KindZero:
		return 0
	case KindNaR:
		return math.NaN()
	}
	significand := 1.0
	weight := 0.5
	for i := d.FBits - 1; i >= 0; i-- {
		if d.Fraction&(1<<uint(i)) != 0 {
			significand += weight
		}
		weight /= 2
	}
	v := significand * math.Pow(2, float64(d.Scale))
	if d.Sign {
		v = -v
	}
	return v
}

// FromIeeeFields constructs a Posit directly from a decoded IeeeFields
// tuple (host float -> IeeeDecoder -> posit bits), encoding its sign,
// unbiased scale and raw fraction with the codec rather than going through
// FromFloat64's Frexp shortcut. No Triple is built on this path.
func FromIeeeFields[L block.Limb](n, e int, ep nerr.ErrorPolicy, f ieeefloat.Fields) *Posit[L] {
	p := New[L](n, e, ep)
	switch f.Class {
	case ieeefloat.Inf, ieeefloat.QNan, ieeefloat.SNan:
		p.bits.SetBit(n-1, true)
		return p
	case ieeefloat.Zero:
		return p
	}
	scale := f.UnbiasedScale()
	fracWidth := f.FractionBits
	fracStore := block.New[uint64](fracWidth, block.Unsigned)
	for i := 0; i < fracWidth; i++ {
		if f.RawFraction&(1<<uint(i)) != 0 {
			fracStore.SetBit(i, true)
		}
	}
	p.bits = p.codec.Encode(f.Sign, scale, fracStore)
	return p
}

// Reciprocal computes 1/p (spec §4.5): a power-of-two posit (fraction
// all-zero) has an exact reciprocal via two's complement of the bits
// with the sign reapplied; otherwise a fixed-point long division of 1.0
// by the mantissa is performed in a wide scratch buffer before
// re-encoding.
func (p *Posit[L]) Reciprocal() (*Posit[L], error) {
	d := p.decoded()
	if d.Kind == KindNaR {
		if err := nerr.Report(p.ep, "posit.Reciprocal", nerr.OperandNaR, "reciprocal of NaR"); err != nil {
			return nil, err
		}
		return NaRValue[L](p.bits.Bits(), p.codec.E, p.ep), nil
	}
	if d.Kind == KindZero {
		if err := nerr.Report(p.ep, "posit.Reciprocal", nerr.DivideByZero, "reciprocal of zero"); err != nil {
			return nil, err
		}
		return NaRValue[L](p.bits.Bits(), p.codec.E, p.ep), nil
	}
	if d.Fraction == 0 {
		out := p.bits.Clone()
		out.TwosComplement()
		out.SetBit(out.Bits()-1, d.Sign)
		return p.wrap(out), nil
	}

	width := 3*d.FBits + 4
	numer := block.New[uint64](width, block.Unsigned)
	numer.SetBit(width-1, true) // 1.0 scaled by 2^(width-1-FBits) over the mantissa's scale
	denom := block.New[uint64](width, block.Unsigned)
	denom.SetBit(d.FBits, true) // mantissa 1.f as an integer: hidden bit at FBits
	for i := 0; i < d.FBits; i++ {
		if d.Fraction&(1<<uint(i)) != 0 {
			denom.SetBit(i, true)
		}
	}

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

	// Locate the quotient's leading 1 and realign so the hidden bit sits
	// at position width-1, adjusting scale by the shift amount.
	lead := -1
	for i := width - 1; i >= 0; i-- {
		if q.GetBit(i) {
			lead = i
			break
		}
	}
	shift := (width - 1) - lead
	if shift > 0 {
		q.ShiftLeft(shift)
	} else if shift < 0 {
		q.ShiftRightArith(-shift)
	}

	// Every quotient bit below the hidden bit becomes fraction, so Encode
	// rounds from the full division result.
	newFrac := block.New[uint64](width-1, block.Unsigned)
	for i := 0; i < width-1; i++ {
		newFrac.SetBit(i, q.GetBit(i))
	}

	// Before the shift, q held 2^(width-1) / (1.f * 2^FBits) with
	// (width-1-FBits) fractional bits, so the hidden bit's weight is
	// 2^(FBits-shift).
	newScale := -d.Scale - int64(shift) + int64(d.FBits)
	p.bits = p.codec.Encode(d.Sign, newScale, newFrac)
	return p, nil
}
