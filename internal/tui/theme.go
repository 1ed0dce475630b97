package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the browser. All colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Anchor marker and anchor rows.
	AnchorForeground lipgloss.Color

	// UI chrome.
	BorderColor      lipgloss.Color
	FocusColor       lipgloss.Color
	HelpText         lipgloss.Color
	NoticeForeground lipgloss.Color
}

// DefaultTheme targets 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	AnchorForeground: lipgloss.Color("114"), // green

	BorderColor:      lipgloss.Color("240"),
	FocusColor:       lipgloss.Color("220"), // amber
	HelpText:         lipgloss.Color("241"),
	NoticeForeground: lipgloss.Color("208"), // orange
}
