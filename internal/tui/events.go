package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Event is the closed set of inputs the Coordinator reacts to. Raw key
// messages are turned into events by Normalize, so the state machine never
// sees terminal-specific key codes.
type Event int

const (
	EventNone Event = iota
	EventSwitchFocus
	EventQuit
	EventConfirm
	EventMoveUp
	EventMoveDown
	EventPageUp
	EventPageDown
	EventTop
	EventBottom
	EventToggleSelection
	EventToggleFit
	EventRefresh
	EventGrowLeft
	EventShrinkLeft
)

var eventNames = map[Event]string{
	EventNone:            "none",
	EventSwitchFocus:     "switch-focus",
	EventQuit:            "quit",
	EventConfirm:         "confirm",
	EventMoveUp:          "move-up",
	EventMoveDown:        "move-down",
	EventPageUp:          "page-up",
	EventPageDown:        "page-down",
	EventTop:             "top",
	EventBottom:          "bottom",
	EventToggleSelection: "toggle-selection",
	EventToggleFit:       "toggle-fit",
	EventRefresh:         "refresh",
	EventGrowLeft:        "grow-left",
	EventShrinkLeft:      "shrink-left",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// IsMove reports whether e moves the cursor or the preview scroll position.
func (e Event) IsMove() bool {
	switch e {
	case EventMoveUp, EventMoveDown, EventPageUp, EventPageDown, EventTop, EventBottom:
		return true
	}
	return false
}

// Normalize maps a key press to an Event. Keys without a binding map to
// EventNone.
func Normalize(msg tea.KeyMsg, keys KeyMap) Event {
	switch {
	case key.Matches(msg, keys.Quit):
		return EventQuit
	case key.Matches(msg, keys.FocusToggle):
		return EventSwitchFocus
	case key.Matches(msg, keys.Confirm):
		return EventConfirm
	case key.Matches(msg, keys.Up):
		return EventMoveUp
	case key.Matches(msg, keys.Down):
		return EventMoveDown
	case key.Matches(msg, keys.PageUp):
		return EventPageUp
	case key.Matches(msg, keys.PageDown):
		return EventPageDown
	case key.Matches(msg, keys.Home):
		return EventTop
	case key.Matches(msg, keys.End):
		return EventBottom
	case key.Matches(msg, keys.ToggleSelection):
		return EventToggleSelection
	case key.Matches(msg, keys.ToggleFit):
		return EventToggleFit
	case key.Matches(msg, keys.Refresh):
		return EventRefresh
	case key.Matches(msg, keys.SplitGrow):
		return EventGrowLeft
	case key.Matches(msg, keys.SplitShrink):
		return EventShrinkLeft
	}
	return EventNone
}
