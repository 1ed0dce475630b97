package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a single-column scrollbar of the given height.
// The thumb marks the visible region within total lines and uses the focus
// color when its pane has focus. When everything fits, the thumb fills the
// whole column.
func RenderScrollbar(theme Theme, height, total, visible, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.FocusColor
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)
	if total <= visible || total <= 0 {
		for i := range lines {
			lines[i] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := max(height*visible/total, 1)

	scrollable := total - visible
	track := height - thumbSize
	thumbOffset := 0
	if scrollable > 0 && track > 0 {
		thumbOffset = offset * track / scrollable
	}
	thumbOffset = min(thumbOffset, height-thumbSize)

	for i := range lines {
		if i >= thumbOffset && i < thumbOffset+thumbSize {
			lines[i] = thumbStyle.Render("┃")
		} else {
			lines[i] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
