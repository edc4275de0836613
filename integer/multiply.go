package integer

import (
	"math/bits"

	"github.com/strand-systems/universal/block"
)

// absStaging copies s's value into a fresh (N+1)-bit Unsigned staging
// Store holding its absolute magnitude. The extra bit is required so the
// N-bit signed maxneg corner case (-2^(N-1)) has a representable
// positive counterpart: two's-complementing maxneg within only N bits
// reproduces maxneg itself.
func absStaging[L block.Limb](s *block.Store[L]) *block.Store[L] {
	n := s.Bits()
	staged := block.New[L](n+1, block.Signed)
	for i := 0; i < n; i++ {
		staged.SetBit(i, s.GetBit(i))
	}
	if s.IsNegative() {
		staged.SetBit(n, true) // sign-extend into the extra bit
		staged.TwosComplement()
	}
	mag := block.New[L](n+1, block.Unsigned)
	for i := 0; i < n+1; i++ {
		mag.SetBit(i, staged.GetBit(i))
	}
	return mag
}

// mulMagnitude computes the full unsigned product a*b into a Store of
// width a.Bits()+b.Bits(), honouring spec §4.2's two backends: 64-bit
// limbs use the bits.Mul64 128-bit-product intrinsic; narrower limbs
// accumulate uint64 column sums with explicit carry propagation.
func mulMagnitude[L block.Limb](a, b *block.Store[L]) *block.Store[L] {
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
			if limbBits == 64 {
				sum, c := bits.Add64(acc[k], carry, 0)
				acc[k] = sum
				carry = c
			} else {
				sum := acc[k] + carry
				acc[k] = sum & mask
				carry = sum >> uint(limbBits)
			}
			k++
		}
	}

	result := block.New[L](a.Bits()+b.Bits(), block.Unsigned)
	for i := 0; i < result.LimbCount() && i < len(acc); i++ {
		result.SetLimb(i, L(acc[i]))
	}
	return result
}

// Mul returns b*other. Integer-kind multiplication computes signed
// magnitudes via absStaging, multiplies unsigned, and reapplies the XOR
// of operand signs. Whole/Natural operands are never negative, so the
// multiplier runs the unsigned path directly (spec §4.2).
func (b *BigInteger[L]) Mul(other *BigInteger[L]) *BigInteger[L] {
	n := b.s.Bits()
	if b.kind != Integer {
		prod := mulMagnitude(b.s, other.s)
		out := block.New[L](n, block.Signed)
		for i := 0; i < out.LimbCount(); i++ {
			out.SetLimb(i, prod.GetLimb(i))
		}
		return b.wrap(out)
	}

	aNeg, bNeg := b.s.IsNegative(), other.s.IsNegative()
	aAbs, bAbs := absStaging(b.s), absStaging(other.s)
	prod := mulMagnitude(aAbs, bAbs)

	out := block.New[L](n, block.Signed)
	for i := 0; i < out.LimbCount(); i++ {
		out.SetLimb(i, prod.GetLimb(i))
	}
	if aNeg != bNeg {
		out.TwosComplement()
	}
	return b.wrap(out)
}
