package posit

import (
	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/triple"
)

// scratchF is the fraction width fed to Triple staging: spec §4.5's "key
// constraint" requires a scratch buffer of at least N+4 bits to compute a
// correct sticky bit, so posit arithmetic always stages through a
// fraction width comfortably above the posit's own maximum fbits.
func (p *Posit[L]) scratchF() int {
	return p.bits.Bits() + 4
}

func (p *Posit[L]) toTriple() triple.Triple {
	d := p.decoded()
	f := p.scratchF()
	switch d.Kind {
	case KindZero:
		return triple.Zero(d.Sign, f)
	case KindNaR:
		return triple.NaN(f)
	}
	return triple.NewRep(d.Sign, d.Scale, d.Fraction<<uint(f-d.FBits), f)
}

func (p *Posit[L]) fromTriple(t triple.Triple) *Posit[L] {
	if t.IsNaN() {
		return NaRValue[L](p.bits.Bits(), p.codec.E, p.ep)
	}
	if t.IsZero() {
		return New[L](p.bits.Bits(), p.codec.E, p.ep)
	}
	frac := block.New[uint64](t.F, block.Unsigned)
	for i := 0; i < t.F; i++ {
		frac.SetBit(i, t.Sig.GetBit(i))
	}
	out := p.wrap(p.codec.Encode(t.Sign, t.Scale, frac))
	return out
}

func (p *Posit[L]) checkOperands(other *Posit[L], op string) error {
	if p.IsNaR() || other.IsNaR() {
		return nerr.Report(p.ep, op, nerr.OperandNaR, "operand is NaR")
	}
	return nil
}

// Add, Mul are routed through Triple: posit bits -> two Triples -> Triple
// op -> new posit bits.
func (p *Posit[L]) Add(other *Posit[L]) (*Posit[L], error) {
	if err := p.checkOperands(other, "posit.Add"); err != nil {
		return nil, err
	}
	result := triple.Add(p.toTriple(), other.toTriple())
	return p.fromTriple(result), nil
}

func (p *Posit[L]) Mul(other *Posit[L]) (*Posit[L], error) {
	if err := p.checkOperands(other, "posit.Mul"); err != nil {
		return nil, err
	}
	result := triple.Mul(p.toTriple(), other.toTriple())
	return p.fromTriple(result), nil
}

func (p *Posit[L]) Div(other *Posit[L]) (*Posit[L], error) {
	if err := p.checkOperands(other, "posit.Div"); err != nil {
		return nil, err
	}
	if other.IsZero() {
		if err := nerr.Report(p.ep, "posit.Div", nerr.DivideByZero, "division by zero"); err != nil {
			return nil, err
		}
		return NaRValue[L](p.bits.Bits(), p.codec.E, p.ep), nil
	}
	result := triple.Div(p.toTriple(), other.toTriple())
	return p.fromTriple(result), nil
}

// Compare orders two posits. NaR compares as if it were the smallest
// value (an arbitrary but total order — posits have no standard NaR
// ordering, unlike IEEE NaN's unordered comparisons).
func (p *Posit[L]) Compare(other *Posit[L]) int {
	if p.IsNaR() && other.IsNaR() {
		return 0
	}
	if p.IsNaR() {
		return -1
	}
	if other.IsNaR() {
		return 1
	}
	return p.bits.Compare(other.bits)
}
