// Package evalscript walks a small textual script of one expression per
// line and evaluates it against the module's numeric types, playing the
// same "sequentially materialise parsed units against a runtime" role
// loader.LoadProgramIntoVM plays for a parsed assembly program — applied
// to numeric expressions instead of instructions and directives.
package evalscript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/litfmt"
	"github.com/strand-systems/universal/lns"
	"github.com/strand-systems/universal/posit"
)

// variant identifies which numeric family a script line's type spec
// names.
type variant int

const (
	variantInteger variant = iota
	variantFixedPoint
	variantPosit
	variantLns
)

// typeSpec is a parsed "name(p1,p2,...)" prefix, e.g. "posit(8,0)" or
// "integer(128)".
type typeSpec struct {
	v      variant
	params []int
}

// parseTypeSpec parses the type token at the start of a script line.
func parseTypeSpec(tok string) (typeSpec, error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 || !strings.HasSuffix(tok, ")") {
		return typeSpec{}, nerr.New("evalscript.parseTypeSpec", nerr.ParseFailure, fmt.Sprintf("malformed type spec %q", tok))
	}
	name := tok[:open]
	inner := tok[open+1 : len(tok)-1]

	var v variant
	switch name {
	case "integer":
		v = variantInteger
	case "fixedpoint":
		v = variantFixedPoint
	case "posit":
		v = variantPosit
	case "lns":
		v = variantLns
	default:
		return typeSpec{}, nerr.New("evalscript.parseTypeSpec", nerr.ParseFailure, fmt.Sprintf("unknown type %q", name))
	}

	var params []int
	if inner != "" {
		for _, p := range strings.Split(inner, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return typeSpec{}, nerr.New("evalscript.parseTypeSpec", nerr.ParseFailure, fmt.Sprintf("invalid parameter %q", p))
			}
			params = append(params, n)
		}
	}
	return typeSpec{v: v, params: params}, nil
}

// parseRawBits parses a hex (0x-prefixed) or decimal literal as a raw
// unsigned bit pattern — the form script operands other than "parse"
// mode use to denote a type's exact wire-level representation.
func parseRawBits(text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return strconv.ParseUint(strings.ReplaceAll(text[2:], "'", ""), 16, 64)
	}
	return strconv.ParseUint(text, 10, 64)
}

// evalInteger dispatches a 64-bit-limb integer expression or parse line.
func evalInteger(ts typeSpec, fields []string, ep nerr.ErrorPolicy) (string, error) {
	if len(ts.params) != 1 {
		return "", nerr.New("evalscript.evalInteger", nerr.ParseFailure, "integer(N) requires exactly one parameter")
	}
	n := ts.params[0]

	if fields[0] == "parse" {
		text := strings.Trim(strings.Join(fields[1:], " "), "\"")
		b, err := litfmt.ParseInteger[uint64](n, integer.Integer, ep, text)
		if err != nil {
			return "", err
		}
		return litfmt.FormatInteger(b), nil
	}

	if len(fields) != 3 {
		return "", nerr.New("evalscript.evalInteger", nerr.ParseFailure, "expected OPERAND OP OPERAND")
	}
	av, err := parseRawBits(fields[0])
	if err != nil {
		return "", nerr.New("evalscript.evalInteger", nerr.ParseFailure, err.Error())
	}
	bv, err := parseRawBits(fields[2])
	if err != nil {
		return "", nerr.New("evalscript.evalInteger", nerr.ParseFailure, err.Error())
	}
	a := integer.New[uint64](n, integer.Integer, ep)
	a.Store().SetBits(av)
	b := integer.New[uint64](n, integer.Integer, ep)
	b.Store().SetBits(bv)

	switch fields[1] {
	case "+":
		return litfmt.FormatInteger(a.Add(b)), nil
	case "*":
		return litfmt.FormatInteger(a.Mul(b)), nil
	case "/":
		q, _, err := a.DivMod(b)
		if err != nil {
			return "", err
		}
		return litfmt.FormatInteger(q), nil
	default:
		return "", nerr.New("evalscript.evalInteger", nerr.ParseFailure, fmt.Sprintf("unsupported operator %q", fields[1]))
	}
}

// evalFixedPoint dispatches a FixedPoint(N,R) expression or parse line.
func evalFixedPoint(ts typeSpec, fields []string, ep nerr.ErrorPolicy) (string, error) {
	if len(ts.params) != 2 {
		return "", nerr.New("evalscript.evalFixedPoint", nerr.ParseFailure, "fixedpoint(N,R) requires exactly two parameters")
	}
	n, r := ts.params[0], ts.params[1]

	if fields[0] == "parse" {
		text := strings.Trim(strings.Join(fields[1:], " "), "\"")
		f, err := litfmt.ParseFixedPoint[uint64](n, r, fixedpoint.Modulo, ep, text)
		if err != nil {
			return "", err
		}
		return litfmt.FormatFixedPoint(f), nil
	}

	if len(fields) != 3 {
		return "", nerr.New("evalscript.evalFixedPoint", nerr.ParseFailure, "expected OPERAND OP OPERAND")
	}
	av, err := parseRawBits(fields[0])
	if err != nil {
		return "", nerr.New("evalscript.evalFixedPoint", nerr.ParseFailure, err.Error())
	}
	bv, err := parseRawBits(fields[2])
	if err != nil {
		return "", nerr.New("evalscript.evalFixedPoint", nerr.ParseFailure, err.Error())
	}
	a := fixedpoint.FromRawBits[uint64](n, r, fixedpoint.Modulo, ep, av)
	b := fixedpoint.FromRawBits[uint64](n, r, fixedpoint.Modulo, ep, bv)

	switch fields[1] {
	case "+":
		return litfmt.FormatFixedPoint(a.Add(b)), nil
	case "-":
		return litfmt.FormatFixedPoint(a.Sub(b)), nil
	case "*":
		return litfmt.FormatFixedPoint(a.Mul(b)), nil
	case "/":
		q, err := a.Div(b)
		if err != nil {
			return "", err
		}
		return litfmt.FormatFixedPoint(q), nil
	default:
		return "", nerr.New("evalscript.evalFixedPoint", nerr.ParseFailure, fmt.Sprintf("unsupported operator %q", fields[1]))
	}
}

// evalPosit dispatches a Posit(N,E) expression or parse line. Bare
// operands denote raw bit patterns; "parse" mode uses litfmt's
// structured N.ExHEXp form.
func evalPosit(ts typeSpec, fields []string, ep nerr.ErrorPolicy) (string, error) {
	if len(ts.params) != 2 {
		return "", nerr.New("evalscript.evalPosit", nerr.ParseFailure, "posit(N,E) requires exactly two parameters")
	}
	n, e := ts.params[0], ts.params[1]

	if fields[0] == "parse" {
		text := strings.Trim(strings.Join(fields[1:], " "), "\"")
		p, err := litfmt.ParsePosit[uint64](ep, text)
		if err != nil {
			return "", err
		}
		return litfmt.FormatPosit(p, n, e), nil
	}

	if len(fields) != 3 {
		return "", nerr.New("evalscript.evalPosit", nerr.ParseFailure, "expected OPERAND OP OPERAND")
	}
	av, err := parseRawBits(fields[0])
	if err != nil {
		return "", nerr.New("evalscript.evalPosit", nerr.ParseFailure, err.Error())
	}
	bv, err := parseRawBits(fields[2])
	if err != nil {
		return "", nerr.New("evalscript.evalPosit", nerr.ParseFailure, err.Error())
	}
	a := posit.New[uint64](n, e, ep)
	a.Bits().SetBits(av)
	b := posit.New[uint64](n, e, ep)
	b.Bits().SetBits(bv)

	var result *posit.Posit[uint64]
	switch fields[1] {
	case "+":
		result, err = a.Add(b)
	case "*":
		result, err = a.Mul(b)
	case "/":
		result, err = a.Div(b)
	default:
		return "", nerr.New("evalscript.evalPosit", nerr.ParseFailure, fmt.Sprintf("unsupported operator %q", fields[1]))
	}
	if err != nil {
		return "", err
	}
	return litfmt.FormatPosit(result, n, e), nil
}

// evalLns dispatches an Lns(N,F) expression or parse line.
func evalLns(ts typeSpec, fields []string, ep nerr.ErrorPolicy) (string, error) {
	if len(ts.params) != 2 {
		return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, "lns(N,F) requires exactly two parameters")
	}
	n, f := ts.params[0], ts.params[1]

	if fields[0] == "parse" {
		text := strings.Trim(strings.Join(fields[1:], " "), "\"")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, fmt.Sprintf("invalid lns literal %q", text))
		}
		l := lns.FromFloat64[uint64](n, f, lns.Modulo, ep, v)
		return strconv.FormatFloat(l.ToFloat64(), 'g', -1, 64), nil
	}

	if len(fields) != 3 {
		return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, "expected OPERAND OP OPERAND")
	}
	av, err := parseRawBits(fields[0])
	if err != nil {
		return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, err.Error())
	}
	bv, err := parseRawBits(fields[2])
	if err != nil {
		return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, err.Error())
	}
	a := lns.New[uint64](n, f, lns.Modulo, ep)
	a.Store().SetBits(av)
	b := lns.New[uint64](n, f, lns.Modulo, ep)
	b.Store().SetBits(bv)

	switch fields[1] {
	case "*":
		return strconv.FormatFloat(a.Mul(b).ToFloat64(), 'g', -1, 64), nil
	case "/":
		q, err := a.Div(b)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(q.ToFloat64(), 'g', -1, 64), nil
	default:
		return "", nerr.New("evalscript.evalLns", nerr.ParseFailure, fmt.Sprintf("unsupported operator %q", fields[1]))
	}
}

// Run reads one expression per line from script, evaluates each against
// the type named at the start of the line, and writes the decimal or
// structured result to w — one line of output per non-blank input line.
// Blank lines and lines starting with "#" are skipped, matching the
// loader's tolerance for directive-free gaps in a program.
func Run(w io.Writer, script string, ep nerr.ErrorPolicy) error {
	scanner := bufio.NewScanner(strings.NewReader(script))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		ts, err := parseTypeSpec(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		var result string
		switch ts.v {
		case variantInteger:
			result, err = evalInteger(ts, fields[1:], ep)
		case variantFixedPoint:
			result, err = evalFixedPoint(ts, fields[1:], ep)
		case variantPosit:
			result, err = evalPosit(ts, fields[1:], ep)
		case variantLns:
			result, err = evalLns(ts, fields[1:], ep)
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if _, err := fmt.Fprintln(w, result); err != nil {
			return err
		}
	}
	return scanner.Err()
}
