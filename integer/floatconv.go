package integer

import (
	"math"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
)

// ToFloat64 converts b to the nearest representable float64. Values whose
// magnitude exceeds what float64 can represent exactly are rounded; this
// can only lose precision, never overflow, since float64's exponent range
// vastly exceeds any practical BigInteger width.
func (b *BigInteger[L]) ToFloat64() float64 {
	if b.s.IsZero() {
		return 0
	}
	neg := b.kind == Integer && b.s.IsNegative()
	mag := b.s
	if neg {
		mag = absStaging(b.s)
	}
	var f float64
	for i := mag.LimbCount() - 1; i >= 0; i-- {
		f = f*math.Pow(2, float64(mag.LimbBits())) + float64(mag.GetLimb(i))
	}
	if neg {
		f = -f
	}
	return f
}

// FromFloat64Bits resolves the Open Question on integer<->float conversion
// (SPEC_FULL.md §6): out-of-range host floats saturate to the type's
// min/max representable value and report nerr.ErrOutOfRange, rather than
// wrapping silently. NaN reports the same way (there is no natural integer
// saturation target for it; it maps to zero).
func FromFloat64Bits[L block.Limb](n int, kind Kind, policy nerr.ErrorPolicy, v float64) (*BigInteger[L], error) {
	b := New[L](n, kind, policy)
	if math.IsNaN(v) {
		if err := nerr.Report(policy, "integer.FromFloat64", nerr.OutOfRange, "NaN has no integer representation"); err != nil {
			return nil, err
		}
		return b, nil
	}

	maxVal, minVal := rangeBounds(n, kind)
	if v > maxVal || v < minVal {
		clamped := maxVal
		if v < minVal {
			clamped = minVal
		}
		out := fromFloatMagnitude[L](n, clamped)
		res := &BigInteger[L]{s: out, kind: kind, policy: policy}
		if err := nerr.Report(policy, "integer.FromFloat64", nerr.OutOfRange, "value exceeds representable range, saturated"); err != nil {
			return nil, err
		}
		return res, nil
	}

	out := fromFloatMagnitude[L](n, v)
	return &BigInteger[L]{s: out, kind: kind, policy: policy}, nil
}

func fromFloatMagnitude[L block.Limb](n int, v float64) *block.Store[L] {
	neg := v < 0
	mag := math.Trunc(math.Abs(v))
	out := block.New[L](n, block.Signed)
	limbBits := out.LimbBits()
	scale := math.Pow(2, float64(limbBits))
	for i := 0; i < out.LimbCount(); i++ {
		limb := math.Mod(mag, scale)
		out.SetLimb(i, L(uint64(limb)))
		mag = math.Trunc(mag / scale)
	}
	if neg {
		out.TwosComplement()
	}
	return out
}

func rangeBounds(n int, kind Kind) (maxVal, minVal float64) {
	switch kind {
	case Natural:
		return math.Pow(2, float64(n)) - 1, 0
	case Whole:
		return math.Pow(2, float64(n)) - 1, 0
	default:
		return math.Pow(2, float64(n-1)) - 1, -math.Pow(2, float64(n-1))
	}
}
