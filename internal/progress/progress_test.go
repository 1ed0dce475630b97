package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii terminal": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestIndicator_SilentWithoutTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ind := NewIndicator(&buf, TerminalCapabilities{})
	ind.Start("reading repository")
	ind.Start("drawing graph")
	ind.Stop(true)

	assert.Empty(t, buf.String())
	assert.Equal(t, "drawing graph", ind.Message())
}

func TestIndicator_PrintsFinalStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ind := NewIndicator(&buf, TerminalCapabilities{IsTTY: true})
	ind.Start("reading repository")
	ind.Stop(false)

	assert.Contains(t, buf.String(), "[FAIL] reading repository\n")

	// A second Stop is a no-op.
	buf.Reset()
	ind.Stop(true)
	assert.Empty(t, buf.String())
}
