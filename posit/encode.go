package posit

import "github.com/strand-systems/universal/block"

// Encode implements spec §4.5's encode-with-rounding algorithm: frac is
// the fraction buffer (bit i carries weight 2^i, i.e. the same
// right-aligned convention Decode produces), sized fbits bits — any
// precision beyond what the regime/exponent fields leave room for is
// folded into the sticky bit rather than silently dropped, which is the
// "trap the source fell into" spec §4.5 warns about.
func (c Codec[L]) Encode(sign bool, scale int64, frac *block.Store[uint64]) *block.Store[L] {
	n, e := c.N, c.E
	kMax := int64(n - 2)
	kMin := -int64(n - 2)
	scaleMax := kMax << uint(e)
	scaleMin := kMin << uint(e)

	fbits := 0
	if frac != nil {
		fbits = frac.Bits()
	}

	scaleClamped := scale
	if scale > scaleMax {
		scaleClamped = scaleMax
		frac = nil
		fbits = 0
	} else if scale < scaleMin {
		scaleClamped = scaleMin
		frac = nil
		fbits = 0
	}

	k := scaleClamped >> uint(e)
	exponentValue := scaleClamped - (k << uint(e))

	totalWidth := n + 3 + e
	buf := make([]bool, totalWidth)
	idx := 0

	var runLen int
	if scaleClamped >= 0 {
		runLen = 1 + int(k)
		for i := 0; i < runLen && idx < totalWidth; i++ {
			buf[idx] = true
			idx++
		}
		if idx < totalWidth {
			buf[idx] = false
			idx++
		}
	} else {
		runLen = -int(k)
		for i := 0; i < runLen && idx < totalWidth; i++ {
			buf[idx] = false
			idx++
		}
		if idx < totalWidth {
			buf[idx] = true
			idx++
		}
	}

	for i := e - 1; i >= 0 && idx < totalWidth; i-- {
		buf[idx] = (exponentValue>>uint(i))&1 == 1
		idx++
	}

	nf := n + 1 - (2 + runLen + e)
	if nf < 0 {
		nf = 0
	}

	stickyFromFrac := false
	for i := 0; i < nf && idx < totalWidth; i++ {
		bitPos := fbits - 1 - i
		var bitVal bool
		if bitPos >= 0 {
			bitVal = frac.GetBit(bitPos)
		}
		buf[idx] = bitVal
		idx++
	}
	for i := nf; i < fbits; i++ {
		bitPos := fbits - 1 - i
		if bitPos >= 0 && frac.GetBit(bitPos) {
			stickyFromFrac = true
			break
		}
	}

	// The final N-bit code reserves bit N-1 as the sign bit (always 0 at
	// this pre-complement stage, per decode's own treatment of bit N-1 as
	// distinct from the regime scan which starts at N-2); regime,
	// exponent, and fraction together fill only the remaining N-1 bits.
	// So the truncation boundary sits one position earlier than a naive
	// "keep the top N bits" reading of step 4 would suggest.
	length := totalWidth
	blast := false
	if n-2 >= 0 && n-2 < length {
		blast = buf[n-2]
	}
	bafter := false
	if n-1 < length {
		bafter = buf[n-1]
	}
	bsticky := stickyFromFrac
	for i := n; i < length; i++ {
		if buf[i] {
			bsticky = true
			break
		}
	}
	roundBit := (blast && bafter) || (bafter && bsticky)

	result := block.New[L](n, block.Signed)
	for i := 0; i <= n-2; i++ {
		srcIdx := n - 2 - i
		if srcIdx < length {
			result.SetBit(i, buf[srcIdx])
		}
	}
	if roundBit {
		one := block.New[L](n, block.Signed)
		one.SetBit(0, true)
		result = result.Add(one)
	}

	if sign {
		result.TwosComplement()
	}
	return result
}
