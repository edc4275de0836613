package integer

import (
	"math/bits"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
)

// significantLimbs returns the index of the highest non-zero limb, plus
// one; at least 1 even for a zero value (so single-limb fast paths have a
// well-defined length).
func significantLimbs[L block.Limb](s *block.Store[L]) int {
	for i := s.LimbCount() - 1; i >= 0; i-- {
		if s.GetLimb(i) != 0 {
			return i + 1
		}
	}
	return 1
}

func digitsOf[L block.Limb](s *block.Store[L], count int) []uint64 {
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		out[i] = uint64(s.GetLimb(i))
	}
	return out
}

func storeFromDigits[L block.Limb](bitsWidth int, digits []uint64) *block.Store[L] {
	out := block.New[L](bitsWidth, block.Unsigned)
	for i := 0; i < out.LimbCount() && i < len(digits); i++ {
		out.SetLimb(i, L(digits[i]))
	}
	return out
}

// shiftLeftDigits shifts a little-endian digit slice left by s bits
// (0 <= s < limbBits), returning a slice one digit longer to hold the
// bits shifted out of the top.
func shiftLeftDigits(limbBits, s int, digits []uint64) []uint64 {
	out := make([]uint64, len(digits)+1)
	if s == 0 {
		copy(out, digits)
		return out
	}
	mask := block.LimbMask(limbBits)
	var carry uint64
	for i := 0; i < len(digits); i++ {
		out[i] = ((digits[i] << uint(s)) | carry) & mask
		carry = digits[i] >> uint(limbBits-s)
	}
	out[len(digits)] = carry
	return out
}

// shiftRightDigits shifts a little-endian digit slice right by s bits,
// discarding bits shifted out of the bottom (used to denormalise the
// remainder after division).
func shiftRightDigits(limbBits, s int, digits []uint64) []uint64 {
	out := make([]uint64, len(digits))
	if s == 0 {
		copy(out, digits)
		return out
	}
	mask := block.LimbMask(limbBits)
	for i := 0; i < len(digits); i++ {
		cur := digits[i] >> uint(s)
		var upper uint64
		if i+1 < len(digits) {
			upper = digits[i+1] << uint(limbBits-s)
		}
		out[i] = (cur | upper) & mask
	}
	return out
}

func leadingZeroDigits(limbBits int, x uint64) int {
	return bits.LeadingZeros64(x) - (64 - limbBits)
}

// knuthDivSmallLimb implements Algorithm D for limb widths < 64, where the
// digit base 2^limbBits fits comfortably in a uint64 accumulator. uDigits
// must already be normalised (shifted so the divisor's top digit has its
// high bit set) and one digit longer than the dividend's significant
// length; vDigits is the normalised divisor (length n >= 2).
func knuthDivSmallLimb(limbBits int, uDigits, vDigits []uint64) (q, r []uint64) {
	base := uint64(1) << uint(limbBits)
	n := len(vDigits)
	m := len(uDigits) - n - 1
	u := append([]uint64(nil), uDigits...)
	qn := make([]uint64, m+1)

	for j := m; j >= 0; j-- {
		num := u[j+n]*base + u[j+n-1]
		qhat := num / vDigits[n-1]
		rhat := num % vDigits[n-1]

		for qhat >= base || qhat*vDigits[n-2] > rhat*base+u[j+n-2] {
			qhat--
			rhat += vDigits[n-1]
			if rhat >= base {
				break
			}
		}

		var borrow int64
		var carry uint64
		for i := 0; i < n; i++ {
			p := qhat*vDigits[i] + carry
			carry = p / base
			sub := int64(u[j+i]) - int64(p%base) - borrow
			if sub < 0 {
				sub += int64(base)
				borrow = 1
			} else {
				borrow = 0
			}
			u[j+i] = uint64(sub)
		}
		sub := int64(u[j+n]) - int64(carry) - borrow
		if sub < 0 {
			sub += int64(base)
			borrow = 1
		} else {
			borrow = 0
		}
		u[j+n] = uint64(sub)
		qn[j] = qhat

		if borrow != 0 {
			// Add-back: qhat was one too large (rare).
			qn[j]--
			var c uint64
			for i := 0; i < n; i++ {
				s := u[j+i] + vDigits[i] + c
				u[j+i] = s % base
				c = s / base
			}
			u[j+n] = (u[j+n] + c) % base
		}
	}
	return qn, u[:n]
}

// knuthDivWideLimb is the limbBits==64 analogue of knuthDivSmallLimb,
// using math/bits double-word primitives in place of a BASE that would
// not fit in a uint64.
func knuthDivWideLimb(uDigits, vDigits []uint64) (q, r []uint64) {
	n := len(vDigits)
	m := len(uDigits) - n - 1
	u := append([]uint64(nil), uDigits...)
	qn := make([]uint64, m+1)

	for j := m; j >= 0; j-- {
		qhat, rhat := bits.Div64(u[j+n], u[j+n-1], vDigits[n-1])

		for {
			hi2, lo2 := bits.Mul64(qhat, vDigits[n-2])
			over := hi2 > rhat || (hi2 == rhat && lo2 > u[j+n-2])
			if !over {
				break
			}
			qhat--
			sum, carry := bits.Add64(rhat, vDigits[n-1], 0)
			rhat = sum
			if carry != 0 {
				break
			}
		}

		var borrow, mulCarry uint64
		for i := 0; i < n; i++ {
			hi, lo := bits.Mul64(qhat, vDigits[i])
			lo, c := bits.Add64(lo, mulCarry, 0)
			hi += c
			mulCarry = hi
			sub, bo := bits.Sub64(u[j+i], lo, borrow)
			u[j+i] = sub
			borrow = bo
		}
		top, bo := bits.Sub64(u[j+n], mulCarry, borrow)
		u[j+n] = top
		qn[j] = qhat

		if bo != 0 {
			qn[j]--
			var c uint64
			for i := 0; i < n; i++ {
				s, c1 := bits.Add64(u[j+i], vDigits[i], c)
				u[j+i] = s
				c = c1
			}
			s, _ := bits.Add64(u[j+n], 0, c)
			u[j+n] = s
		}
	}
	return qn, u[:n]
}

// DivMod computes b/other and b%other per Knuth Algorithm D (spec §4.2):
// operates on (N+1)-bit absolute-value staging integers, normalises by
// the divisor's leading-zero count, and reapplies signs on the way out
// (quotient sign = XOR of operand signs, remainder sign = dividend's
// sign). Division by zero and Whole/Natural constraint violations are
// reported through the configured ErrorPolicy.
func (b *BigInteger[L]) DivMod(other *BigInteger[L]) (quotient, remainder *BigInteger[L], err error) {
	if other.s.IsZero() {
		if e := nerr.Report(b.policy, "integer.Div", nerr.DivideByZero, "divisor is zero"); e != nil {
			return nil, nil, e
		}
		return New[L](b.s.Bits(), b.kind, b.policy), New[L](b.s.Bits(), b.kind, b.policy), nil
	}

	n := b.s.Bits()
	aNeg, bNeg := b.s.IsNegative(), other.s.IsNegative()
	if b.kind != Integer {
		aNeg, bNeg = false, false
	}

	// Whole/Natural operands are never negative, so absStaging's sign
	// handling is simply a no-op for them.
	aAbs, bAbs := absStaging(b.s), absStaging(other.s)

	limbBits := aAbs.LimbBits()
	mLen := significantLimbs(aAbs)
	dLen := significantLimbs(bAbs)

	if aAbs.Compare(bAbs) < 0 {
		qOut := block.New[L](n, block.Signed)
		rOut := block.New[L](n, block.Signed)
		for i := 0; i < rOut.LimbCount(); i++ {
			rOut.SetLimb(i, aAbs.GetLimb(i))
		}
		if aNeg {
			rOut.TwosComplement()
		}
		qi, ri := b.wrap(qOut), b.wrap(rOut)
		if e := enforceKind(b.kind, b.policy, "integer.Div", qi.s); e != nil {
			return nil, nil, e
		}
		return qi, ri, nil
	}

	var qDigits, rDigits []uint64

	if dLen == 1 {
		// Single-limb divisor: walk the dividend top-down carrying the
		// remainder, as spec §4.2 step 4 describes.
		divisor := bAbs.GetLimb(0)
		qDigits = make([]uint64, mLen)
		var rem uint64
		for i := mLen - 1; i >= 0; i-- {
			cur := uint64(aAbs.GetLimb(i))
			if limbBits == 64 {
				qDigits[i], rem = bits.Div64(rem, cur, uint64(divisor))
			} else {
				num := rem<<uint(limbBits) | cur
				qDigits[i] = num / uint64(divisor)
				rem = num % uint64(divisor)
			}
		}
		rDigits = []uint64{rem}
	} else {
		uTrim := digitsOf(aAbs, mLen)
		vTrim := digitsOf(bAbs, dLen)
		shift := leadingZeroDigits(limbBits, vTrim[dLen-1])

		uNorm := shiftLeftDigits(limbBits, shift, uTrim)
		vNormExt := shiftLeftDigits(limbBits, shift, vTrim)
		vNorm := vNormExt[:dLen]

		if limbBits == 64 {
			qDigits, rDigits = knuthDivWideLimb(uNorm, vNorm)
		} else {
			qDigits, rDigits = knuthDivSmallLimb(limbBits, uNorm, vNorm)
		}
		rDigits = shiftRightDigits(limbBits, shift, rDigits)
	}

	qOut := storeFromDigits[L](n, qDigits)
	rOut := storeFromDigits[L](n, rDigits)
	qSigned := block.New[L](n, block.Signed)
	rSigned := block.New[L](n, block.Signed)
	for i := 0; i < qSigned.LimbCount(); i++ {
		qSigned.SetLimb(i, qOut.GetLimb(i))
	}
	for i := 0; i < rSigned.LimbCount(); i++ {
		rSigned.SetLimb(i, rOut.GetLimb(i))
	}
	if aNeg != bNeg {
		qSigned.TwosComplement()
	}
	if aNeg {
		rSigned.TwosComplement()
	}

	qi, ri := b.wrap(qSigned), b.wrap(rSigned)
	if e := enforceKind(b.kind, b.policy, "integer.Div", qi.s); e != nil {
		return nil, nil, e
	}
	return qi, ri, nil
}
