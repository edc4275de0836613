// Package litfmt provides the two canonical textual forms of the numeric
// types in this module: a decimal/hex literal grammar for
// integer.BigInteger and fixedpoint.FixedPoint (grounded on the teacher's
// parser/lexer.go readNumber and parser/errors.go NewError/ErrorKind
// patterns), and a structured "N.ExHEXp" form for posit.Posit (grounded
// on tools/format.go's FormatOptions style variants).
package litfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/posit"
)

// Style mirrors the teacher's FormatStyle: Default and Compact emit a bare
// run of hex digits, Expanded adds an apostrophe separator every 4 hex
// digits for readability.
type Style int

const (
	Default Style = iota
	Compact
	Expanded
)

// stripSeparators removes the apostrophe digit separators the lexer's
// number grammar tolerates between hex digits (e.g. "FF'FF").
func stripSeparators(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

// ParseInteger parses a decimal or 0x-hex literal into a BigInteger(n,
// kind). An optional leading '-' is accepted for decimal and hex alike.
// A leading '0' followed by digits other than an 'x'/'X' hex marker is
// the octal grammar the lexer recognises but this module does not
// implement; it reports ErrUnsupportedFormat rather than silently
// misreading the value as decimal.
func ParseInteger[L block.Limb](n int, kind integer.Kind, policy nerr.ErrorPolicy, text string) (*integer.BigInteger[L], error) {
	s := strings.TrimSpace(text)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	var mag uint64
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		digits := stripSeparators(s[2:])
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return nil, nerr.New("litfmt.ParseInteger", nerr.ParseFailure, fmt.Sprintf("invalid hex literal %q", text))
		}
		mag = v

	case len(s) > 1 && s[0] == '0':
		return nil, nerr.New("litfmt.ParseInteger", nerr.UnsupportedFormat, fmt.Sprintf("octal literal %q is recognised but not implemented", text))

	default:
		digits := stripSeparators(s)
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return nil, nerr.New("litfmt.ParseInteger", nerr.ParseFailure, fmt.Sprintf("invalid decimal literal %q", text))
		}
		mag = v
	}

	b := integer.New[L](n, kind, policy)
	b.Store().SetBits(mag)
	if neg {
		b.Store().TwosComplement()
	}
	return b, nil
}

// FormatInteger renders a BigInteger in decimal.
func FormatInteger[L block.Limb](b *integer.BigInteger[L]) string {
	v := b.ToFloat64()
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatIntegerHex renders a BigInteger's raw bit pattern as 0x-hex,
// grouped into nibbles the way tools/format.go's AlignOperands/style
// options group assembly operands.
func FormatIntegerHex[L block.Limb](b *integer.BigInteger[L], style Style) string {
	return formatHex(b.Store(), style)
}

func formatHex[L block.Limb](s *block.Store[L], style Style) string {
	nibbles := (s.Bits() + 3) / 4
	var sb strings.Builder
	sb.WriteString("0x")
	for i := nibbles - 1; i >= 0; i-- {
		lo := i * 4
		var nib uint64
		for b := 0; b < 4 && lo+b < s.Bits(); b++ {
			if s.GetBit(lo + b) {
				nib |= 1 << uint(b)
			}
		}
		fmt.Fprintf(&sb, "%X", nib)
		// Expanded groups every 4 hex digits with a separator, the way
		// the teacher's ExpandedFormatOptions widens column spacing for
		// readability; Default and Compact emit a bare run of digits.
		if style == Expanded && i > 0 && i%4 == 0 {
			sb.WriteString("'")
		}
	}
	return sb.String()
}

// ParseFixedPoint parses a decimal literal into a FixedPoint(n, r) via a
// host-float round trip — the same decimal-accumulate shape the lexer's
// readNumber uses for plain decimal, generalised to a fractional scale.
func ParseFixedPoint[L block.Limb](n, r int, policy fixedpoint.Policy, ep nerr.ErrorPolicy, text string) (*fixedpoint.FixedPoint[L], error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, nerr.New("litfmt.ParseFixedPoint", nerr.ParseFailure, fmt.Sprintf("invalid fixed-point literal %q", text))
	}
	return fixedpoint.FromFloat64[L](n, r, policy, ep, v), nil
}

// FormatFixedPoint renders a FixedPoint in decimal.
func FormatFixedPoint[L block.Limb](f *fixedpoint.FixedPoint[L]) string {
	return strconv.FormatFloat(f.ToFloat64(), 'f', -1, 64)
}

// FormatFixedPointHex renders a FixedPoint's raw bit pattern as 0x-hex.
func FormatFixedPointHex[L block.Limb](f *fixedpoint.FixedPoint[L], style Style) string {
	return formatHex(f.Store(), style)
}

// FormatPosit renders a Posit in the structured "N.ExHEXp" form: width,
// exponent-field size, hex of the raw N-bit pattern, trailing literal
// 'p' tag.
func FormatPosit[L block.Limb](p *posit.Posit[L], n, e int) string {
	bits := p.Bits().ToUint64()
	hexDigits := (n + 3) / 4
	return fmt.Sprintf("%d.%dx%0*Xp", n, e, hexDigits, bits)
}

// ParsePosit parses the structured "N.ExHEXp" form back into a Posit.
func ParsePosit[L block.Limb](ep nerr.ErrorPolicy, text string) (*posit.Posit[L], error) {
	s := strings.TrimSpace(text)
	if !strings.HasSuffix(s, "p") {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("missing trailing 'p' in %q", text))
	}
	s = s[:len(s)-1]

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("missing width/exponent in %q", text))
	}
	n, err := strconv.Atoi(s[:dot])
	if err != nil {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("invalid width in %q", text))
	}
	rest := s[dot+1:]

	xIdx := strings.IndexByte(rest, 'x')
	if xIdx < 0 {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("missing 'x' marker in %q", text))
	}
	e, err := strconv.Atoi(rest[:xIdx])
	if err != nil {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("invalid exponent-bit count in %q", text))
	}
	hexPart := rest[xIdx+1:]
	bits, err := strconv.ParseUint(hexPart, 16, 64)
	if err != nil {
		return nil, nerr.New("litfmt.ParsePosit", nerr.ParseFailure, fmt.Sprintf("invalid hex payload in %q", text))
	}

	p := posit.New[L](n, e, ep)
	p.Bits().SetBits(bits)
	return p, nil
}
