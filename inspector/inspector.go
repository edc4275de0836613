// Package inspector is a tview-based bit-field viewer for one numeric
// value, grounded on the teacher's debugger/tui.go: the same
// TextView-panel-plus-command-input layout, global Ctrl-key bindings
// (Ctrl-C quits, Ctrl-L refreshes), and WriteOutput/RefreshAll update
// cycle, repurposed to
// display a decoded Field/Value table instead of CPU registers.
package inspector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/strand-systems/universal/block"
	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/litfmt"
	"github.com/strand-systems/universal/lns"
	"github.com/strand-systems/universal/posit"
)

// Field is a single labelled row in the decoded-fields panel, e.g.
// {"sign", "false"} or {"regime bits", "2"}.
type Field struct {
	Label string
	Value string
}

// Snapshot is the rendered state of one numeric value: its type name,
// raw hex, and decoded field breakdown.
type Snapshot struct {
	TypeName string
	RawHex   string
	Decimal  string
	Fields   []Field
}

// SnapshotInteger builds a Snapshot for a BigInteger.
func SnapshotInteger(n int, kind integer.Kind, raw uint64, decimal string) Snapshot {
	return Snapshot{
		TypeName: fmt.Sprintf("integer(%d, %s)", n, kind),
		RawHex:   fmt.Sprintf("0x%X", raw),
		Decimal:  decimal,
		Fields: []Field{
			{"width", strconv.Itoa(n)},
			{"kind", kind.String()},
		},
	}
}

// SnapshotFixedPointOf builds a Snapshot from a FixedPoint value.
func SnapshotFixedPointOf[L block.Limb](f *fixedpoint.FixedPoint[L]) Snapshot {
	return Snapshot{
		TypeName: fmt.Sprintf("fixedpoint(%d, %d)", f.Bits(), f.R()),
		RawHex:   litfmt.FormatFixedPointHex(f, litfmt.Default),
		Decimal:  litfmt.FormatFixedPoint(f),
		Fields: []Field{
			{"width", strconv.Itoa(f.Bits())},
			{"fractional bits", strconv.Itoa(f.R())},
			{"truncate", strconv.FormatInt(f.Truncate(), 10)},
			{"frac", strconv.FormatFloat(f.Frac(), 'g', -1, 64)},
		},
	}
}

// SnapshotPositOf builds a Snapshot from a Posit value, showing the
// regime/exponent/fraction breakdown decode produces.
func SnapshotPositOf[L block.Limb](p *posit.Posit[L], n, e int) Snapshot {
	kind := "value"
	switch {
	case p.IsNaR():
		kind = "NaR"
	case p.IsZero():
		kind = "zero"
	}
	return Snapshot{
		TypeName: fmt.Sprintf("posit(%d, %d)", n, e),
		RawHex:   fmt.Sprintf("0x%X", p.Bits().ToUint64()),
		Decimal:  strconv.FormatFloat(p.ToFloat64(), 'g', -1, 64),
		Fields: []Field{
			{"kind", kind},
			{"sign", strconv.FormatBool(p.Sign())},
			{"regime bits", strconv.Itoa(p.RegimeBits())},
			{"exponent bits", strconv.Itoa(p.ExponentBits())},
			{"fraction bits", strconv.Itoa(p.FractionBits())},
			{"scale", strconv.FormatInt(p.Scale(), 10)},
		},
	}
}

// SnapshotLnsOf builds a Snapshot from an Lns2b value.
func SnapshotLnsOf[L block.Limb](l *lns.Lns2b[L]) Snapshot {
	kind := "value"
	switch {
	case l.IsNaN():
		kind = "NaN"
	case l.IsZero():
		kind = "zero"
	}
	return Snapshot{
		TypeName: "lns",
		RawHex:   fmt.Sprintf("0x%X", l.Store().ToUint64()),
		Decimal:  strconv.FormatFloat(l.ToFloat64(), 'g', -1, 64),
		Fields: []Field{
			{"kind", kind},
		},
	}
}

// Inspector is the tview bit-field viewer.
type Inspector struct {
	App          *tview.Application
	Pages        *tview.Pages
	MainLayout   *tview.Flex
	BitsView     *tview.TextView
	FieldsView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	current Snapshot
}

// New creates an Inspector showing snapshot.
func New(snapshot Snapshot) *Inspector {
	insp := &Inspector{
		App:     tview.NewApplication(),
		current: snapshot,
	}
	insp.initializeViews()
	insp.buildLayout()
	insp.setupKeyBindings()
	insp.RefreshAll()
	return insp
}

func (i *Inspector) initializeViews() {
	i.BitsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	i.BitsView.SetBorder(true).SetTitle(" Bits ")

	i.FieldsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	i.FieldsView.SetBorder(true).SetTitle(" Fields ")

	i.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	i.OutputView.SetBorder(true).SetTitle(" Output ")

	i.CommandInput = tview.NewInputField().
		SetLabel("> ")
	i.CommandInput.SetBorder(true).SetTitle(" Command ")
}

func (i *Inspector) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(i.BitsView, 0, 1, false).
		AddItem(i.FieldsView, 0, 1, false)

	i.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(i.OutputView, 6, 0, false).
		AddItem(i.CommandInput, 3, 0, true)

	i.Pages = tview.NewPages().
		AddPage("main", i.MainLayout, true, true)
}

func (i *Inspector) setupKeyBindings() {
	i.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			i.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			i.RefreshAll()
			return nil
		}
		return event
	})
}

// WriteOutput appends text to the output panel.
func (i *Inspector) WriteOutput(text string) {
	_, _ = i.OutputView.Write([]byte(text)) // ignore write errors, mirroring the teacher's TUI
	i.OutputView.ScrollToEnd()
}

// Show replaces the displayed snapshot and refreshes the panels.
func (i *Inspector) Show(snapshot Snapshot) {
	i.current = snapshot
	i.RefreshAll()
}

// RefreshAll redraws the Bits and Fields panels from the current
// snapshot.
func (i *Inspector) RefreshAll() {
	i.BitsView.SetText(fmt.Sprintf("%s\n\nhex:  %s\ndec:  %s", i.current.TypeName, i.current.RawHex, i.current.Decimal))

	var sb strings.Builder
	for _, f := range i.current.Fields {
		fmt.Fprintf(&sb, "%-16s %s\n", f.Label, f.Value)
	}
	i.FieldsView.SetText(sb.String())
}

// Run starts the tview event loop.
func (i *Inspector) Run() error {
	return i.App.SetRoot(i.Pages, true).SetFocus(i.CommandInput).Run()
}

// Stop stops the tview event loop.
func (i *Inspector) Stop() {
	i.App.Stop()
}
