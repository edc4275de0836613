// Package sigbuf implements SignificandBuffer: a wide unsigned staging
// register for fraction bits, with a sticky-bit tail test on top of plain
// block.Store bit operations. No other package in this module imports it:
// the posit codec stages fraction bits in a block.Store[uint64] directly.
package sigbuf

import "github.com/strand-systems/universal/block"

// Buffer is SignificandBuffer(F, L): an F-bit unsigned BlockStore used as
// a scratch register for fraction bits.
type Buffer[L block.Limb] struct {
	s *block.Store[L]
}

// New allocates a zero-valued F-bit buffer.
func New[L block.Limb](f int) *Buffer[L] {
	return &Buffer[L]{s: block.New[L](f, block.Unsigned)}
}

// FromStore wraps an existing Store (e.g. a slice of another buffer's
// bits already assembled elsewhere) without copying.
func FromStore[L block.Limb](s *block.Store[L]) *Buffer[L] {
	return &Buffer[L]{s: s}
}

// Store exposes the underlying BlockStore for codecs that need direct
// limb access.
func (b *Buffer[L]) Store() *block.Store[L] { return b.s }

// Bits reports the buffer's width F.
func (b *Buffer[L]) Bits() int { return b.s.Bits() }

// SetBit, Bit, ShiftLeft, ShiftRight forward directly to the backing
// BlockStore (spec §3's "bit-set, left/right shift" contract).
func (b *Buffer[L]) SetBit(i int, v bool) { b.s.SetBit(i, v) }
func (b *Buffer[L]) Bit(i int) bool       { return b.s.GetBit(i) }

func (b *Buffer[L]) ShiftLeft(k int)  { b.s.ShiftLeft(k) }
func (b *Buffer[L]) ShiftRight(k int) { b.s.ShiftRightArith(k) } // Unsigned: zero-extends.

// AnyAfter reports whether any bit of index < k is set — the sticky-bit
// aggregation spec.md §3 names explicitly (used to detect information
// discarded below a rounding point).
func (b *Buffer[L]) AnyAfter(k int) bool {
	if k > b.s.Bits() {
		k = b.s.Bits()
	}
	for i := 0; i < k; i++ {
		if b.s.GetBit(i) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (b *Buffer[L]) Clone() *Buffer[L] {
	return &Buffer[L]{s: b.s.Clone()}
}
