package evalscript_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strand-systems/universal/evalscript"
	"github.com/strand-systems/universal/internal/nerr"
)

func runScript(t *testing.T, script string) []string {
	t.Helper()
	var buf bytes.Buffer
	err := evalscript.Run(&buf, script, nerr.Throw)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	return lines
}

func TestIntegerAddition(t *testing.T) {
	out := runScript(t, "integer(32) 2 + 3")
	require.Equal(t, []string{"5"}, out)
}

func TestIntegerDivision(t *testing.T) {
	out := runScript(t, "integer(32) 0xA / 0x2")
	require.Equal(t, []string{"5"}, out)
}

func TestIntegerParse(t *testing.T) {
	out := runScript(t, `integer(32) parse "-12"`)
	require.Equal(t, []string{"-12"}, out)
}

func TestPositMultiplication(t *testing.T) {
	out := runScript(t, "posit(8,0) 0x40 * 0x60")
	require.Len(t, out, 1)
	require.Regexp(t, `^8\.0x[0-9A-F]{2}p$`, out[0])
}

func TestLnsParse(t *testing.T) {
	out := runScript(t, "lns(32,16) parse \"2.0\"")
	require.Len(t, out, 1)
}

func TestBlankLinesAndCommentsSkipped(t *testing.T) {
	out := runScript(t, "\n# a comment\ninteger(32) 1 + 1\n\n")
	require.Equal(t, []string{"2"}, out)
}

func TestUnknownTypeReportsError(t *testing.T) {
	var buf bytes.Buffer
	err := evalscript.Run(&buf, "vector(4) 1 + 1", nerr.Throw)
	require.Error(t, err)
}
