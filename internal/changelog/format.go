package changelog

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// RowStyle defines the color and icon for one kind of versioned commit.
type RowStyle struct {
	Color *color.Color
	Icon  string
}

var (
	anchorStyle = RowStyle{Color: color.New(color.FgGreen, color.Bold), Icon: "◆"}
	patchStyle  = RowStyle{Color: color.New(color.FgCyan), Icon: "·"}
	dimStyle    = color.New(color.Faint)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes one row per versioned commit: version, date, short id
// and subject. Anchors are highlighted and a blank line separates minor
// versions. Subjects are truncated to the available width.
func FormatTerminal(entries []VersionedCommit, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)
	versionWidth := 0
	for _, e := range entries {
		versionWidth = max(versionWidth, len(e.Version))
	}

	for i, e := range entries {
		if e.Anchor && i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeRow(e, versionWidth, width, w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", e.Version, err)
		}
	}

	return nil
}

// writeRow writes a single version row.
func writeRow(e VersionedCommit, versionWidth, width int, w io.Writer, opts FormatOptions) error {
	style := patchStyle
	if e.Anchor {
		style = anchorStyle
	}

	// icon, space, version, two spaces, date, two spaces, short id, two spaces
	used := 2 + versionWidth + 2 + len(e.Commit.Date) + 2 + len(e.Commit.ShortID) + 2
	subject := truncateText(e.Commit.Subject, width-used)
	version := fmt.Sprintf("%-*s", versionWidth, e.Version)

	if opts.Plain {
		marker := "-"
		if e.Anchor {
			marker = "*"
		}
		_, err := fmt.Fprintf(w, "%s %s  %s  %s  %s\n", marker, version, e.Commit.Date, e.Commit.ShortID, subject)
		return err
	}

	colored := style.Color.SprintFunc()
	dim := dimStyle.SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s  %s  %s  %s\n",
		colored(style.Icon), colored(version), dim(e.Commit.Date), dim(e.Commit.ShortID), subject)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncateText truncates text to maxLen runes, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 3 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
