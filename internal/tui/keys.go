package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the changelog browser.
type KeyMap struct {
	// Navigation (graph cursor or preview scrolling depending on focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching.
	FocusToggle key.Binding

	// Graph pane only.
	ToggleSelection key.Binding
	ToggleFit       key.Binding

	Refresh key.Binding

	// Splitter resize.
	SplitGrow   key.Binding // Grow the graph pane.
	SplitShrink key.Binding // Shrink the graph pane.

	Confirm key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	ToggleSelection: key.NewBinding(
		key.WithKeys(" ", "space", "x"),
		key.WithHelp("space", "anchor"),
	),
	ToggleFit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit block"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	SplitGrow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]/[", "resize"),
	),
	SplitShrink: key.NewBinding(
		key.WithKeys("["),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "write"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp lists the bindings shown in the help bar, in display order.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.Up, keys.Down, keys.PageDown, keys.ToggleSelection, keys.ToggleFit,
		keys.FocusToggle, keys.SplitGrow, keys.Refresh, keys.Confirm, keys.Quit,
	}
}
