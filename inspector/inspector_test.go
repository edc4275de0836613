package inspector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/fixedpoint"
	"github.com/strand-systems/universal/inspector"
	"github.com/strand-systems/universal/integer"
	"github.com/strand-systems/universal/internal/nerr"
	"github.com/strand-systems/universal/lns"
	"github.com/strand-systems/universal/posit"
)

func TestSnapshotIntegerFields(t *testing.T) {
	snap := inspector.SnapshotInteger(32, integer.Natural, 42, "42")
	require.Equal(t, "0x2A", snap.RawHex)
	require.Equal(t, "42", snap.Decimal)
	require.NotEmpty(t, snap.Fields)
}

func TestSnapshotFixedPointOf(t *testing.T) {
	f := fixedpoint.FromFloat64[uint32](32, 16, fixedpoint.Modulo, nerr.Throw, 3.5)
	snap := inspector.SnapshotFixedPointOf(f)
	require.Contains(t, snap.TypeName, "fixedpoint")
	require.NotEmpty(t, snap.Fields)
}

func TestSnapshotPositOf(t *testing.T) {
	p := posit.FromFloat64[uint8](8, 0, nerr.Throw, 1.0)
	snap := inspector.SnapshotPositOf(p, 8, 0)
	require.Equal(t, "0x40", snap.RawHex)
}

func TestSnapshotLnsOf(t *testing.T) {
	l := lns.FromFloat64[uint32](32, 16, lns.Modulo, nerr.Throw, 2.0)
	snap := inspector.SnapshotLnsOf(l)
	require.Equal(t, "lns", snap.TypeName)
}

func TestNewAndRefreshDoesNotPanic(t *testing.T) {
	snap := inspector.SnapshotInteger(8, integer.Integer, 1, "1")
	insp := inspector.New(snap)
	insp.WriteOutput("hello\n")
	insp.Show(inspector.SnapshotInteger(8, integer.Integer, 2, "2"))
}
