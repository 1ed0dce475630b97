// Package viewport keeps a cursor and a scroll offset over line-based content.
// Viewport follows commit headers in a parsed graph; Scroller pages plain text.
package viewport

import "github.com/ariel-frischer/anchorlog/internal/graph"

// PageStep is the number of headers a page movement crosses in the graph pane.
const PageStep = 5

// Viewport is the view state of the graph pane. Cursor is an index into the
// graph's headers, Offset the first visible line.
//
// Invariant after EnsureVisible: 0 <= Offset <= max(0, lines-rows) and, when
// the graph has headers, the cursor's header line lies in [Offset, Offset+rows).
type Viewport struct {
	Cursor       int
	Offset       int
	FitFullBlock bool
}

// EnsureVisible scrolls so the cursor's header line is visible in a pane of
// rows lines. The screen only scrolls when the header reaches an edge. With
// FitFullBlock set and a block no taller than the pane, the offset is then
// pulled forward so the whole block shows, without losing the header line.
func (v *Viewport) EnsureVisible(g *graph.Graph, rows int) {
	if rows < 1 {
		rows = 1
	}
	total := len(g.Lines)

	if g.HeaderCount() == 0 {
		v.Cursor = 0
		v.Offset = ClampOffset(v.Offset, total, rows)
		return
	}
	v.Cursor = clampIndex(v.Cursor, g.HeaderCount())

	headerLine, stop := g.BlockRange(v.Cursor)
	blockSize := stop - headerLine

	if headerLine < v.Offset {
		v.Offset = headerLine
	} else if headerLine >= v.Offset+rows {
		v.Offset = headerLine - (rows - 1)
	}

	if v.FitFullBlock && blockSize <= rows {
		if stop > v.Offset+rows {
			v.Offset = stop - rows
		}
		if headerLine < v.Offset {
			v.Offset = headerLine
		}
	}

	v.Offset = ClampOffset(v.Offset, total, rows)
}

// Move steps the cursor by delta headers, stopping at either end.
func (v *Viewport) Move(g *graph.Graph, delta, rows int) {
	v.Cursor = clampIndex(v.Cursor+delta, g.HeaderCount())
	v.EnsureVisible(g, rows)
}

// Page moves the cursor PageStep headers in direction (+1 down, -1 up).
func (v *Viewport) Page(g *graph.Graph, direction, rows int) {
	v.Move(g, direction*PageStep, rows)
}

// Top jumps to the first header.
func (v *Viewport) Top(g *graph.Graph, rows int) {
	v.Cursor = 0
	v.EnsureVisible(g, rows)
}

// Bottom jumps to the last header.
func (v *Viewport) Bottom(g *graph.Graph, rows int) {
	v.Cursor = clampIndex(g.HeaderCount()-1, g.HeaderCount())
	v.EnsureVisible(g, rows)
}

// ToggleFit flips fit-full-block mode and recomputes visibility.
func (v *Viewport) ToggleFit(g *graph.Graph, rows int) {
	v.FitFullBlock = !v.FitFullBlock
	v.EnsureVisible(g, rows)
}

// CursorLine returns the line position of the cursor's header, or -1 when
// there are no headers.
func (v *Viewport) CursorLine(g *graph.Graph) int {
	if g.HeaderCount() == 0 {
		return -1
	}
	return g.Headers[clampIndex(v.Cursor, g.HeaderCount())]
}

// VisibleSlice returns the lines in [Offset, Offset+rows) that exist.
func (v *Viewport) VisibleSlice(g *graph.Graph, rows int) []graph.Line {
	return window(g.Lines, v.Offset, rows)
}

// ClampOffset bounds offset to [0, max(0, total-rows)].
func ClampOffset(offset, total, rows int) int {
	maxOffset := total - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// clampIndex bounds index to [0, n-1], or 0 when n is 0.
func clampIndex(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

// window returns items[offset:offset+rows] limited to what exists.
func window[T any](items []T, offset, rows int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || rows <= 0 {
		return nil
	}
	end := offset + rows
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
