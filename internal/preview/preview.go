// Package preview keeps the live changelog preview shown next to the commit
// graph. The controller recomputes the document from the current anchors and
// owns an independent, line-based scroll position.
package preview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/repository"
	"github.com/ariel-frischer/anchorlog/internal/viewport"
)

// Placeholder is displayed while fewer than two anchors are selected.
const Placeholder = "Select at least 2 commits (space) to preview the changelog."

// Controller renders the preview document and tracks its scroll offset.
// A render failure never escapes Update; it replaces the document with a
// single diagnostic line.
type Controller struct {
	cfg       changelog.VersionConfig
	highlight *Highlighter

	document string
	lines    []string
	failure  error
	anchors  []string
	ready    bool
	scroll   viewport.Scroller
}

// Option configures a Controller.
type Option func(*Controller)

// WithHighlighter colors the rendered document. Highlighting is applied per
// line, so the line count of the preview never changes.
func WithHighlighter(h *Highlighter) Option {
	return func(c *Controller) {
		c.highlight = h
	}
}

// New creates a controller showing the placeholder.
func New(cfg changelog.VersionConfig, opts ...Option) *Controller {
	c := &Controller{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	c.setLines(Placeholder)
	return c
}

// Update recomputes the preview for the selected anchor identifiers.
// Identifiers that match no commit are ignored. The scroll offset returns to
// the top whenever the anchor set differs from the previous call; otherwise
// it is kept and callers should Clamp it to the pane.
func (c *Controller) Update(commits []repository.Commit, ids []string) {
	anchors := slices.Clone(ids)
	slices.Sort(anchors)
	anchors = slices.Compact(anchors)

	if !c.ready || !slices.Equal(anchors, c.anchors) {
		c.scroll.Top()
	}
	c.anchors = anchors
	c.ready = true

	c.document, c.failure = "", nil
	positions, _ := changelog.ResolveTokens(commits, anchors)
	slices.Sort(positions)
	positions = slices.Compact(positions)
	if len(positions) < changelog.MinAnchors {
		c.setLines(Placeholder)
		return
	}

	doc, err := c.render(commits, positions)
	if err != nil {
		c.failure = err
		c.setLines(fmt.Sprintf("render failed: %v", err))
		return
	}
	c.document = doc
	c.setLines(strings.TrimSuffix(doc, "\n"))
}

// render runs version assignment and markdown rendering, turning a panic in
// either into an error.
func (c *Controller) render(commits []repository.Commit, positions []int) (doc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	entries, err := changelog.AssignVersions(commits, positions, c.cfg)
	if err != nil {
		return "", err
	}
	return changelog.RenderMarkdownString(entries)
}

func (c *Controller) setLines(text string) {
	c.lines = strings.Split(text, "\n")
	if c.highlight != nil && c.document != "" {
		c.lines = c.highlight.Lines(c.lines)
	}
}

// Document returns the last successfully rendered markdown, or "" while the
// placeholder or a diagnostic is shown.
func (c *Controller) Document() string {
	return c.document
}

// Err returns the last render failure, if any.
func (c *Controller) Err() error {
	return c.failure
}

// Lines returns every line of the displayed text.
func (c *Controller) Lines() []string {
	return c.lines
}

// Offset returns the index of the first visible line.
func (c *Controller) Offset() int {
	return c.scroll.Offset
}

// Visible returns the lines that fit in a pane of rows lines.
func (c *Controller) Visible(rows int) []string {
	return c.scroll.Visible(c.lines, rows)
}

// Scroll moves the view by delta lines.
func (c *Controller) Scroll(delta, rows int) {
	c.scroll.Scroll(delta, len(c.lines), rows)
}

// Page moves the view by one pane height in direction dir (+1 or -1).
func (c *Controller) Page(dir, rows int) {
	c.scroll.Page(dir, len(c.lines), rows)
}

// Top jumps to the first line.
func (c *Controller) Top() {
	c.scroll.Top()
}

// Bottom jumps so the last line is at the bottom of the pane.
func (c *Controller) Bottom(rows int) {
	c.scroll.Bottom(len(c.lines), rows)
}

// Clamp keeps the offset valid after the pane is resized.
func (c *Controller) Clamp(rows int) {
	c.scroll.Clamp(len(c.lines), rows)
}
