// Package round implements a round-to-nearest-even decision primitive and
// a sticky-bit helper over a wide staging buffer (spec §4.8). NearestEven
// is called by the triple package when narrowing a significand;
// StickyBelow is called by FixedPoint multiply. Posit encode applies its
// own guard/sticky rule inline and Lns conversion rounds with the host
// math package; neither calls this package.
package round

// Bits is the minimal surface the rounding primitive needs from a wide
// staging buffer: bit access below the shift point. block.Store and
// sigbuf.Buffer both satisfy it.
type Bits interface {
	Bit(i int) bool
}

// NearestEven inspects a pre-shift buffer `buf` at the point where it is
// about to be shifted right by k bits, and reports whether the shifted
// result should be incremented to round to nearest, ties to even.
//
// guard  = bit[k-1]   (the bit that would be lost, i.e. the new LSB's
//
//	immediate successor)
//
// round  = bit[k-2]   (one below guard)
// sticky = OR of all bits below k-2
//
// Round bit = guard AND (lsb-of-result OR round OR sticky), i.e. round
// half to even: a guard bit alone (exact tie) only rounds up if the
// result's LSB is 1 or any lower bit was set (not an exact tie).
func NearestEven(buf Bits, k int) bool {
	if k <= 0 {
		return false
	}
	guard := buf.Bit(k - 1)
	if !guard {
		return false
	}
	lsb := buf.Bit(k)
	sticky := false
	for i := 0; i < k-1; i++ {
		if buf.Bit(i) {
			sticky = true
			break
		}
	}
	return lsb || sticky
}

// StickyBelow reports whether any bit strictly below index k is set; used
// by fixed-point rounding to fold a wide fraction tail into a single
// sticky signal before the final round decision.
func StickyBelow(buf Bits, k int) bool {
	for i := 0; i < k; i++ {
		if buf.Bit(i) {
			return true
		}
	}
	return false
}
