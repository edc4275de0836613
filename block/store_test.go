package block_test

import (
	"testing"

	"github.com/strand-systems/universal/block"
)

func TestSetBitGetBit(t *testing.T) {
	s := block.New[uint8](12, block.Unsigned)
	s.SetBit(0, true)
	s.SetBit(11, true)
	if !s.GetBit(0) || !s.GetBit(11) {
		t.Fatalf("expected bits 0 and 11 set")
	}
	if s.GetBit(5) {
		t.Fatalf("expected bit 5 clear")
	}
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	s := block.New[uint8](8, block.Unsigned)
	s.SetBit(99, true) // must not panic
	if s.GetBit(99) {
		t.Fatalf("out-of-range read must return false")
	}
}

func TestSurplusBitsStayZero(t *testing.T) {
	s := block.New[uint8](12, block.Unsigned)
	s.SetBits(0xFFFFFFFFFFFFFFFF)
	if s.GetLimb(1)&0xF0 != 0 {
		t.Fatalf("surplus bits of top limb must be zero, got limb1=0x%X", s.GetLimb(1))
	}
}

func TestFlipAndTwosComplement(t *testing.T) {
	s := block.FromUint64[uint8](8, block.Signed, 1)
	s.TwosComplement()
	if s.ToUint64() != 0xFF {
		t.Fatalf("twos complement of 1 in 8 bits should be 0xFF, got 0x%X", s.ToUint64())
	}
}

func TestShiftLeftClearsPastWidth(t *testing.T) {
	s := block.FromUint64[uint8](8, block.Unsigned, 0xFF)
	s.ShiftLeft(8)
	if !s.IsZero() {
		t.Fatalf("shift left by >= N must clear")
	}
}

func TestShiftLeftAcrossLimbs(t *testing.T) {
	s := block.FromUint64[uint8](16, block.Unsigned, 0x00FF)
	s.ShiftLeft(4)
	if s.ToUint64() != 0x0FF0 {
		t.Fatalf("expected 0x0FF0, got 0x%X", s.ToUint64())
	}
}

func TestShiftRightArithSignExtends(t *testing.T) {
	s := block.FromUint64[uint8](8, block.Signed, 0x80) // -128
	s.ShiftRightArith(4)
	if s.ToUint64() != 0xF8 {
		t.Fatalf("arithmetic shift of -128 by 4 should sign-extend to 0xF8, got 0x%X", s.ToUint64())
	}
}

func TestShiftRightLogicalZeroExtends(t *testing.T) {
	s := block.FromUint64[uint8](8, block.Unsigned, 0x80)
	s.ShiftRightArith(4)
	if s.ToUint64() != 0x08 {
		t.Fatalf("logical shift of 0x80 by 4 should zero-extend to 0x08, got 0x%X", s.ToUint64())
	}
}

func TestAddWraps(t *testing.T) {
	a := block.FromUint64[uint8](8, block.Unsigned, 0xFF)
	b := block.FromUint64[uint8](8, block.Unsigned, 1)
	sum := a.Add(b)
	if sum.ToUint64() != 0 {
		t.Fatalf("0xFF + 1 mod 256 should wrap to 0, got 0x%X", sum.ToUint64())
	}
}

func TestCompareSignedMixedSign(t *testing.T) {
	neg := block.FromUint64[uint8](8, block.Signed, 0x80) // -128
	pos := block.FromUint64[uint8](8, block.Signed, 1)
	if neg.Compare(pos) >= 0 {
		t.Fatalf("-128 should compare less than 1")
	}
	if pos.Compare(neg) <= 0 {
		t.Fatalf("1 should compare greater than -128")
	}
}

func TestCompareUnsignedLexicographic(t *testing.T) {
	a := block.FromUint64[uint32](64, block.Unsigned, 0x0000000100000000)
	b := block.FromUint64[uint32](64, block.Unsigned, 0x00000000FFFFFFFF)
	if a.Compare(b) <= 0 {
		t.Fatalf("expected a > b across limb boundary")
	}
}

func Test64BitLimbAddCarryIntrinsicPath(t *testing.T) {
	a := block.FromUint64[uint64](128, block.Unsigned, ^uint64(0))
	b := block.New[uint64](128, block.Unsigned)
	b.SetLimb(0, 1)
	sum := a.Add(b)
	if sum.GetLimb(0) != 0 || sum.GetLimb(1) != 1 {
		t.Fatalf("expected carry into limb 1, got limb0=%d limb1=%d", sum.GetLimb(0), sum.GetLimb(1))
	}
}
