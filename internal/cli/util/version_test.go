package util

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	output := buf.String()
	assert.Contains(t, output, "anchorlog dev\n")
	assert.Contains(t, output, "commit: unknown\n")
	assert.Contains(t, output, "go: "+runtime.Version()+"\n")
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		width int
	}{
		"wide terminal":   {width: 120},
		"narrow terminal": {width: 30},
		"tiny terminal":   {width: 10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printPrettyVersion(&buf, tt.width)

			output := buf.String()
			assert.Contains(t, output, "Version")
			assert.Contains(t, output, "Platform")
			assert.Contains(t, output, SourceURL)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version", versionCmd.Use)
	assert.Contains(t, versionCmd.Aliases, "v")
	assert.NotNil(t, versionCmd.Flags().Lookup("plain"))
}
