package tui

import "github.com/charmbracelet/lipgloss"

// Shared terminal palette for the progress view and the CLI output.
var (
	ColorInk       = lipgloss.Color("#EBDBB2")
	ColorDim       = lipgloss.Color("#928374")
	ColorAccent    = lipgloss.Color("#83A598")
	ColorAccentAlt = lipgloss.Color("#8EC07C")
	ColorSuccess   = lipgloss.Color("#B8BB26")
	ColorWarn      = lipgloss.Color("#FABD2F")
)
