package tui

// Layout configures the split between the graph and preview panes.
type Layout struct {
	// SplitRatio is the initial fraction of the width given to the graph pane.
	SplitRatio float64
	// MinLeftWidth and MinRightWidth bound the panes when resizing.
	MinLeftWidth  int
	MinRightWidth int
	// ResizeStep is the number of columns one resize key moves the split.
	ResizeStep int
}

// DefaultLayout splits the screen evenly.
func DefaultLayout() Layout {
	return Layout{SplitRatio: 0.5, MinLeftWidth: 30, MinRightWidth: 30, ResizeStep: 4}
}

const (
	// dividerWidth is the column between the panes.
	dividerWidth = 1
	// chromeHeight is the separator, status and help lines below the panes.
	chromeHeight = 3
	// defaultWidth and defaultHeight are used until the terminal reports its size.
	defaultWidth  = 80
	defaultHeight = 24
)

// geometry is the computed pane layout for one terminal size.
type geometry struct {
	width     int
	height    int
	leftWidth int
	ratio     float64
}

func newGeometry(layout Layout) geometry {
	g := geometry{ratio: layout.SplitRatio}
	g.resize(layout, defaultWidth, defaultHeight)
	return g
}

// resize recomputes the pane widths for a new terminal size, keeping the
// split ratio.
func (g *geometry) resize(layout Layout, width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.leftWidth = clampLeftWidth(layout, g.width, int(float64(g.available())*g.ratio))
}

// moveSplit shifts the boundary by delta columns within the minimum widths.
func (g *geometry) moveSplit(layout Layout, delta int) {
	g.leftWidth = clampLeftWidth(layout, g.width, g.leftWidth+delta)
	if available := g.available(); available > 0 {
		g.ratio = float64(g.leftWidth) / float64(available)
	}
}

// available is the width shared by both panes.
func (g geometry) available() int {
	return max(g.width-dividerWidth, 0)
}

func (g geometry) rightWidth() int {
	return max(g.available()-g.leftWidth, 0)
}

// rows is the number of content lines each pane shows.
func (g geometry) rows() int {
	return max(g.height-chromeHeight, 1)
}

// clampLeftWidth keeps both panes at their minimum widths. When the terminal
// is too narrow for both minimums the panes share the width evenly.
func clampLeftWidth(layout Layout, width, left int) int {
	available := max(width-dividerWidth, 0)
	lo := layout.MinLeftWidth
	hi := available - layout.MinRightWidth
	if hi < lo {
		return available / 2
	}
	return min(max(left, lo), hi)
}
