package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette for the phosphor terminal look.
var (
	Screen   = lipgloss.Color("#000000") // Black
	Phosphor = lipgloss.Color("#00FF00") // Green
	Dim      = lipgloss.Color("#008800") // Dark Green
	Bright   = lipgloss.Color("#AAFFAA") // Pale Green
	Amber    = lipgloss.Color("#FFB000") // Amber
	Red      = lipgloss.Color("#FF5555") // Soft Red
	Border   = lipgloss.Color("#005500") // Deep Green
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Bright)

	Body = lipgloss.NewStyle().
		Foreground(Phosphor)

	Hint = lipgloss.NewStyle().
		Foreground(Dim).
		Italic(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Bright).
		Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Foreground(Phosphor).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Foreground(Dim).
		Padding(0, 2)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Phosphor).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)
)
