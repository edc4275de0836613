// Command numinspect is this module's only externally-facing surface: a
// flag-based CLI in the teacher's main.go idiom (flag declarations up
// top, Version/Commit/Date build-time vars, dispatch by mode flag) for
// encoding, decoding, and scripting the module's numeric types. No
// HTTP/websocket server mode is carried over — see DESIGN.md for why
// api/service were dropped.
package main

import (
	"fmt"
	"os"

	"github.com/strand-systems/universal/catalog"
	"github.com/strand-systems/universal/config"
	"github.com/strand-systems/universal/evalscript"
	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/inspector"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/litfmt"
	"github.com/strand-systems/universal/lns"
	"github.com/strand-systems/universal/posit"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.showVersion {
		fmt.Printf("numinspect %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		return nil
	}

	if fs.showHelp {
		printHelp()
		return nil
	}

	policy := config.DefaultPolicy()
	if fs.configFile != "" {
		p, err := config.LoadFrom(fs.configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		policy = p
	}
	ep := policy.ErrorPolicy()

	n, e, r := fs.width, fs.expBits, fs.fracBits
	if fs.preset != "" {
		shape, ok := catalog.Lookup(fs.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", fs.preset)
		}
		n, e, r = shape.N, shape.E, shape.R
	}

	switch {
	case fs.scriptFile != "":
		data, err := os.ReadFile(fs.scriptFile) // #nosec G304 -- user-supplied script path
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		return evalscript.Run(os.Stdout, string(data), ep)

	case fs.decodeBits != "":
		return runDecode(fs.flagValues, n, e, r, ep)

	case fs.encodeValue != "":
		return runEncode(fs.flagValues, n, e, r, ep)

	default:
		printHelp()
		return nil
	}
}

func runDecode(fs *flagValues, n, e, r int, ep nerr.ErrorPolicy) error {
	raw, err := litfmt.ParseInteger[uint64](64, integer.Integer, ep, fs.decodeBits)
	if err != nil {
		return err
	}
	bits := raw.Store().ToUint64()

	var snap inspector.Snapshot
	switch fs.typ {
	case "integer":
		b := integer.New[uint64](n, integer.Integer, ep)
		b.Store().SetBits(bits)
		snap = inspector.SnapshotInteger(n, integer.Integer, bits, litfmt.FormatInteger(b))
	case "fixedpoint":
		f := fixedpoint.FromRawBits[uint64](n, r, fixedpoint.Modulo, ep, bits)
		snap = inspector.SnapshotFixedPointOf(f)
	case "posit":
		p := posit.New[uint64](n, e, ep)
		p.Bits().SetBits(bits)
		snap = inspector.SnapshotPositOf(p, n, e)
	case "lns":
		l := lns.New[uint64](n, r, lns.Modulo, ep)
		l.Store().SetBits(bits)
		snap = inspector.SnapshotLnsOf(l)
	default:
		return fmt.Errorf("unknown -type %q", fs.typ)
	}

	if fs.tui {
		return inspector.New(snap).Run()
	}
	fmt.Printf("%s\nhex:  %s\ndec:  %s\n", snap.TypeName, snap.RawHex, snap.Decimal)
	for _, field := range snap.Fields {
		fmt.Printf("  %-16s %s\n", field.Label, field.Value)
	}
	return nil
}

func runEncode(fs *flagValues, n, e, r int, ep nerr.ErrorPolicy) error {
	var v float64
	if _, err := fmt.Sscanf(fs.encodeValue, "%g", &v); err != nil {
		return fmt.Errorf("invalid -encode value %q: %w", fs.encodeValue, err)
	}

	switch fs.typ {
	case "integer":
		b, err := integer.FromFloat64Bits[uint64](n, integer.Integer, ep, v)
		if err != nil {
			return err
		}
		fmt.Println(litfmt.FormatIntegerHex(b, litfmt.Default))
	case "fixedpoint":
		f := fixedpoint.FromFloat64[uint64](n, r, fixedpoint.Modulo, ep, v)
		fmt.Println(litfmt.FormatFixedPointHex(f, litfmt.Default))
	case "posit":
		p := posit.FromFloat64[uint64](n, e, ep, v)
		fmt.Println(litfmt.FormatPosit(p, n, e))
	case "lns":
		l := lns.FromFloat64[uint64](n, r, lns.Modulo, ep, v)
		fmt.Printf("0x%X\n", l.Store().ToUint64())
	default:
		return fmt.Errorf("unknown -type %q", fs.typ)
	}
	return nil
}

func printHelp() {
	fmt.Printf(`numinspect %s

Usage: numinspect -type T -decode BITS [-tui]
       numinspect -type T -encode VALUE
       numinspect -script FILE

Options:
  -type {integer|fixedpoint|posit|lns}  number family to operate on
  -config FILE                          policy TOML file
  -preset NAME                          well-known shape (Posit8_0, Half, ...)
  -width N / -exp E / -frac R           explicit shape parameters
  -decode BITS                          decode a hex/decimal bit pattern
  -encode VALUE                         encode a decimal value
  -tui                                  show the decoded value in the bit-field viewer
  -script FILE                          run a batch expression script
`, Version)
}
