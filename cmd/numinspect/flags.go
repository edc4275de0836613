package main

import "flag"

// flagValues collects the CLI's flags, mirroring the teacher's
// var-block-of-flag.XxxType declarations in main.go.
type flagValues struct {
	showVersion bool
	showHelp    bool

	typ        string
	configFile string
	preset     string

	width    int
	expBits  int
	fracBits int

	decodeBits  string
	encodeValue string
	scriptFile  string
	tui         bool
}

func newFlagSet() *parsedFlags {
	fs := flag.NewFlagSet("numinspect", flag.ContinueOnError)
	v := &flagValues{}

	fs.BoolVar(&v.showVersion, "version", false, "Show version information")
	fs.BoolVar(&v.showHelp, "help", false, "Show help information")

	fs.StringVar(&v.typ, "type", "", "Number family: integer, fixedpoint, posit, lns")
	fs.StringVar(&v.configFile, "config", "", "Policy TOML file")
	fs.StringVar(&v.preset, "preset", "", "Well-known shape name (Posit8_0, Half, ...)")

	fs.IntVar(&v.width, "width", 32, "Shape width N")
	fs.IntVar(&v.expBits, "exp", 2, "Posit exponent-field width E")
	fs.IntVar(&v.fracBits, "frac", 16, "FixedPoint/Lns fractional bit count R/F")

	fs.StringVar(&v.decodeBits, "decode", "", "Decode a hex/decimal bit pattern")
	fs.StringVar(&v.encodeValue, "encode", "", "Encode a decimal value")
	fs.StringVar(&v.scriptFile, "script", "", "Run a batch expression script")
	fs.BoolVar(&v.tui, "tui", false, "Show the decoded value in the bit-field viewer")

	return &parsedFlags{flagValues: v, fs: fs}
}

// parsedFlags embeds flagValues so its fields (typ, configFile, ...) are
// promoted directly onto the value main.go holds, and carries the
// underlying flag.FlagSet purely to drive Parse.
type parsedFlags struct {
	*flagValues
	fs *flag.FlagSet
}

func (p *parsedFlags) Parse(args []string) error {
	return p.fs.Parse(args)
}
