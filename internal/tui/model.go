// Package tui is the interactive changelog browser: a commit graph on the
// left, the live changelog preview on the right.
//
// The Coordinator holds all browsing state and is driven by Events; the
// bubbletea Model only turns key presses into Events and draws the
// Coordinator's state.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Model implements tea.Model on top of a Coordinator.
type Model struct {
	coord *Coordinator
	keys  KeyMap
	theme Theme
	ready bool
}

// NewModel creates a model with the default key map and theme.
func NewModel(coord *Coordinator) Model {
	return Model{coord: coord, keys: DefaultKeyMap, theme: DefaultTheme}
}

// Run shows the browser until the session is confirmed or cancelled.
func Run(coord *Coordinator, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(NewModel(coord), opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// Coordinator returns the state machine behind the model.
func (model Model) Coordinator() *Coordinator {
	return model.coord
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.coord.Resize(message.Width, message.Height)
		model.ready = true

	case tea.KeyMsg:
		model.coord.Dispatch(Normalize(message, model.keys))
		if model.coord.Done() {
			return model, tea.Quit
		}
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	if model.coord.Done() {
		return ""
	}
	if !model.ready {
		return "Loading..."
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		model.renderGraphPane(), model.renderDivider(), model.renderPreviewPane())

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.coord.Width()))

	return strings.Join([]string{content, separator, model.renderStatus(), model.renderHelp()}, "\n")
}

// renderGraphPane draws the visible graph lines with the anchor marker
// column on the left and the scrollbar on the right.
func (model Model) renderGraphPane() string {
	coord := model.coord
	width := coord.LeftWidth()
	rows := coord.Rows()
	g := coord.Graph()
	view := coord.Viewport()
	focused := coord.Focus() == FocusLeft
	textWidth := max(width-2, 0)

	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(textWidth).MaxWidth(textWidth)
	boundary := normal.Foreground(model.theme.FaintText).Underline(true)
	cursor := normal.
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Bold(focused)
	anchor := lipgloss.NewStyle().Foreground(model.theme.AnchorForeground).Bold(true)

	if len(g.Lines) == 0 {
		empty := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(width).Height(rows)
		return empty.Render(" No commits found.")
	}

	cursorLine := view.CursorLine(g)
	visible := view.VisibleSlice(g, rows)
	lines := make([]string, rows)
	for i := range lines {
		if i >= len(visible) {
			lines[i] = strings.Repeat(" ", max(width-1, 0))
			continue
		}
		lineIndex := view.Offset + i
		line := visible[i]

		marker := " "
		if line.IsHeader && coord.Selected(line.Block) {
			marker = anchor.Render("◆")
		}

		style := normal
		switch {
		case lineIndex == cursorLine:
			style = cursor
		case g.IsBoundary(lineIndex) && lineIndex < len(g.Lines)-1:
			style = boundary
		}
		lines[i] = marker + style.Render(truncate(line.Text, textWidth))
	}

	scrollbar := RenderScrollbar(model.theme, rows, len(g.Lines), rows, view.Offset, focused)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

// renderPreviewPane draws the visible preview lines and the scrollbar.
func (model Model) renderPreviewPane() string {
	coord := model.coord
	width := coord.RightWidth()
	rows := coord.Rows()
	p := coord.Preview()
	focused := coord.Focus() == FocusRight
	textWidth := max(width-1, 0)

	style := lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(textWidth).MaxWidth(textWidth)
	if p.Err() != nil {
		style = style.Foreground(model.theme.NoticeForeground)
	}

	visible := p.Visible(rows)
	lines := make([]string, rows)
	for i := range lines {
		text := ""
		if i < len(visible) {
			text = truncate(visible[i], textWidth)
		}
		lines[i] = style.Render(text)
	}

	scrollbar := RenderScrollbar(model.theme, rows, len(p.Lines()), rows, p.Offset(), focused)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

func (model Model) renderDivider() string {
	rows := model.coord.Rows()
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = "│"
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Width(dividerWidth).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

// renderStatus shows the selection count, fit mode and any pending notice.
func (model Model) renderStatus() string {
	coord := model.coord
	fit := "off"
	if coord.Viewport().FitFullBlock {
		fit = "on"
	}
	status := fmt.Sprintf(" %d anchors · %d commits · fit %s", coord.SelectedCount(), len(coord.Commits()), fit)
	status = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(status)

	if notice := coord.Notice(); notice != "" {
		status += "  " + lipgloss.NewStyle().Foreground(model.theme.NoticeForeground).Bold(true).Render(notice)
	}
	return truncate(status, coord.Width())
}

func (model Model) renderHelp() string {
	focusIndicator := "GRAPH"
	if model.coord.Focus() == FocusRight {
		focusIndicator = "PREVIEW"
	}

	parts := []string{fmt.Sprintf(" [%s]", focusIndicator)}
	for _, binding := range model.keys.ShortHelp() {
		help := binding.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}

	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return style.Render(truncate(strings.Join(parts, "  "), model.coord.Width()))
}

// truncate cuts s to width cells, keeping escape sequences intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
