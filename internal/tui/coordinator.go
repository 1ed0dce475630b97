package tui

import (
	"fmt"
	"slices"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/graph"
	"github.com/ariel-frischer/anchorlog/internal/preview"
	"github.com/ariel-frischer/anchorlog/internal/repository"
	"github.com/ariel-frischer/anchorlog/internal/selection"
	"github.com/ariel-frischer/anchorlog/internal/viewport"
)

// Focus is the pane that receives movement keys.
type Focus int

const (
	FocusLeft Focus = iota
	FocusRight
)

func (f Focus) String() string {
	if f == FocusRight {
		return "preview"
	}
	return "graph"
}

// Status is the lifecycle of a browsing session.
type Status int

const (
	StatusRunning Status = iota
	StatusConfirmed
	StatusCancelled
)

// NoticeNeedAnchors is shown when confirm is pressed with too few anchors.
var NoticeNeedAnchors = fmt.Sprintf("need at least %d selected commits", changelog.MinAnchors)

// Loader reads the repository. It runs synchronously on start and on every
// refresh, and must not fail: failures degrade to an empty snapshot.
type Loader func() repository.Snapshot

// Options configures a Coordinator.
type Options struct {
	Version      changelog.VersionConfig
	FitFullBlock bool
	Layout       Layout
	// Highlighter colors the preview; nil leaves it plain.
	Highlighter *preview.Highlighter
	// BeforeRefresh runs before the loader on a refresh event, e.g. to
	// invalidate a graph cache.
	BeforeRefresh func()
}

// Coordinator is the browsing state machine. It owns the graph view, the
// anchor selection and the preview, and changes them only in Dispatch and
// Resize.
type Coordinator struct {
	load          Loader
	beforeRefresh func()
	layout        Layout

	commits   []repository.Commit
	graph     *graph.Graph
	view      viewport.Viewport
	selection selection.Set
	preview   *preview.Controller

	focus    Focus
	status   Status
	notice   string
	result   []string
	geometry geometry
}

// NewCoordinator loads the first snapshot and prepares the initial state:
// graph focused, cursor on the newest commit, nothing selected.
func NewCoordinator(load Loader, opts Options) *Coordinator {
	var previewOpts []preview.Option
	if opts.Highlighter != nil {
		previewOpts = append(previewOpts, preview.WithHighlighter(opts.Highlighter))
	}

	c := &Coordinator{
		load:          load,
		beforeRefresh: opts.BeforeRefresh,
		layout:        opts.Layout,
		view:          viewport.Viewport{FitFullBlock: opts.FitFullBlock},
		preview:       preview.New(opts.Version, previewOpts...),
		geometry:      newGeometry(opts.Layout),
	}
	c.apply(load())
	c.view.EnsureVisible(c.graph, c.Rows())
	c.updatePreview()
	return c
}

// Dispatch applies one event. Events after the session ended are ignored.
// A pending notice is cleared by every event other than EventNone.
func (c *Coordinator) Dispatch(ev Event) {
	if c.status != StatusRunning || ev == EventNone {
		return
	}
	c.notice = ""

	switch ev {
	case EventSwitchFocus:
		if c.focus == FocusLeft {
			c.focus = FocusRight
		} else {
			c.focus = FocusLeft
		}

	case EventQuit:
		c.status = StatusCancelled

	case EventConfirm:
		ids := c.resolvedAnchors()
		if len(ids) < changelog.MinAnchors {
			c.notice = NoticeNeedAnchors
			return
		}
		c.result = ids
		c.status = StatusConfirmed

	case EventMoveUp, EventMoveDown, EventPageUp, EventPageDown, EventTop, EventBottom:
		if c.focus == FocusLeft {
			c.moveCursor(ev)
			c.updatePreview()
		} else {
			c.scrollPreview(ev)
		}

	case EventToggleSelection:
		if c.focus != FocusLeft || c.graph.HeaderCount() == 0 {
			return
		}
		c.selection.Toggle(c.view.Cursor)
		c.updatePreview()

	case EventToggleFit:
		if c.focus != FocusLeft {
			return
		}
		c.view.ToggleFit(c.graph, c.Rows())

	case EventRefresh:
		c.refresh()

	case EventGrowLeft:
		c.geometry.moveSplit(c.layout, c.layout.ResizeStep)
		c.relayout()

	case EventShrinkLeft:
		c.geometry.moveSplit(c.layout, -c.layout.ResizeStep)
		c.relayout()
	}
}

// Resize adapts the panes to a new terminal size, keeping cursor, selection
// and scroll state.
func (c *Coordinator) Resize(width, height int) {
	c.geometry.resize(c.layout, width, height)
	c.relayout()
}

func (c *Coordinator) relayout() {
	c.view.EnsureVisible(c.graph, c.Rows())
	c.preview.Clamp(c.Rows())
}

func (c *Coordinator) moveCursor(ev Event) {
	rows := c.Rows()
	switch ev {
	case EventMoveUp:
		c.view.Move(c.graph, -1, rows)
	case EventMoveDown:
		c.view.Move(c.graph, 1, rows)
	case EventPageUp:
		c.view.Page(c.graph, -1, rows)
	case EventPageDown:
		c.view.Page(c.graph, 1, rows)
	case EventTop:
		c.view.Top(c.graph, rows)
	case EventBottom:
		c.view.Bottom(c.graph, rows)
	}
}

func (c *Coordinator) scrollPreview(ev Event) {
	rows := c.Rows()
	switch ev {
	case EventMoveUp:
		c.preview.Scroll(-1, rows)
	case EventMoveDown:
		c.preview.Scroll(1, rows)
	case EventPageUp:
		c.preview.Page(-1, rows)
	case EventPageDown:
		c.preview.Page(1, rows)
	case EventTop:
		c.preview.Top()
	case EventBottom:
		c.preview.Bottom(rows)
	}
}

// refresh reloads the repository and re-resolves cursor and selection by
// commit identifier, since header indices do not survive a rebuild.
func (c *Coordinator) refresh() {
	ids := c.selection.ResolvedIdentifiers(c.graph)
	cursorID := c.graph.HeaderID(c.view.Cursor)

	if c.beforeRefresh != nil {
		c.beforeRefresh()
	}
	c.apply(c.load())

	c.selection.Rehydrate(ids, c.graph)
	c.view.Cursor = selection.RehydrateCursor(cursorID, c.graph)
	c.view.EnsureVisible(c.graph, c.Rows())
	c.updatePreview()
}

func (c *Coordinator) apply(snap repository.Snapshot) {
	c.commits = snap.Commits
	c.graph = graph.Parse(snap.Graph)
}

func (c *Coordinator) updatePreview() {
	c.preview.Update(c.commits, c.selection.ResolvedIdentifiers(c.graph))
	c.preview.Clamp(c.Rows())
}

// resolvedAnchors returns the full ids of the selected commits that exist in
// the commit list, oldest first.
func (c *Coordinator) resolvedAnchors() []string {
	positions, _ := changelog.ResolveTokens(c.commits, c.selection.ResolvedIdentifiers(c.graph))
	slices.Sort(positions)
	positions = slices.Compact(positions)

	ids := make([]string, len(positions))
	for i, p := range positions {
		ids[i] = c.commits[p].FullID
	}
	return ids
}

// Focus returns the focused pane.
func (c *Coordinator) Focus() Focus { return c.focus }

// Status returns the session state.
func (c *Coordinator) Status() Status { return c.status }

// Done reports whether the session reached a terminal state.
func (c *Coordinator) Done() bool { return c.status != StatusRunning }

// Notice returns the transient message, or "".
func (c *Coordinator) Notice() string { return c.notice }

// Result returns the confirmed anchor commit ids, oldest first. It is nil
// unless the session was confirmed.
func (c *Coordinator) Result() []string {
	if c.status != StatusConfirmed {
		return nil
	}
	return slices.Clone(c.result)
}

// Commits returns the commits of the current snapshot.
func (c *Coordinator) Commits() []repository.Commit { return c.commits }

// Graph returns the parsed graph of the current snapshot.
func (c *Coordinator) Graph() *graph.Graph { return c.graph }

// Viewport returns the graph pane's cursor and scroll state.
func (c *Coordinator) Viewport() viewport.Viewport { return c.view }

// Selected reports whether header index is an anchor.
func (c *Coordinator) Selected(index int) bool { return c.selection.Contains(index) }

// SelectedCount returns the number of selected headers.
func (c *Coordinator) SelectedCount() int { return c.selection.Len() }

// SelectedIDs returns the commit ids of the selected headers.
func (c *Coordinator) SelectedIDs() []string { return c.selection.ResolvedIdentifiers(c.graph) }

// Preview returns the preview controller.
func (c *Coordinator) Preview() *preview.Controller { return c.preview }

// Rows returns the number of content lines per pane.
func (c *Coordinator) Rows() int { return c.geometry.rows() }

// Width returns the terminal width.
func (c *Coordinator) Width() int { return c.geometry.width }

// LeftWidth returns the graph pane width in columns.
func (c *Coordinator) LeftWidth() int { return c.geometry.leftWidth }

// RightWidth returns the preview pane width in columns.
func (c *Coordinator) RightWidth() int { return c.geometry.rightWidth() }
