package viewport

// Scroller is a plain line-based scroll position with no cursor. A page is
// one pane height.
type Scroller struct {
	Offset int
}

// Scroll moves by delta lines and clamps.
func (s *Scroller) Scroll(delta, total, rows int) {
	s.Offset = ClampOffset(s.Offset+delta, total, rows)
}

// Page moves one pane height in direction (+1 down, -1 up).
func (s *Scroller) Page(direction, total, rows int) {
	if rows < 1 {
		rows = 1
	}
	s.Scroll(direction*rows, total, rows)
}

// Top scrolls to the first line.
func (s *Scroller) Top() {
	s.Offset = 0
}

// Bottom scrolls so the last line is at the bottom of the pane.
func (s *Scroller) Bottom(total, rows int) {
	s.Offset = ClampOffset(total, total, rows)
}

// Clamp re-applies the offset bounds, e.g. after the pane or content changed.
func (s *Scroller) Clamp(total, rows int) {
	s.Offset = ClampOffset(s.Offset, total, rows)
}

// Visible returns the lines currently in view.
func (s *Scroller) Visible(lines []string, rows int) []string {
	return window(lines, s.Offset, rows)
}
