// Package theme holds the lipgloss styles for command output.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange, streaks
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(18)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// Conversation
var (
	Assistant = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Learner = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Translation = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	NeedsWork = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Streak = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Levels colors a lesson level label.
func Levels(level string) lipgloss.Style {
	switch level {
	case "Beginner":
		return lipgloss.NewStyle().Foreground(Success)
	case "Intermediate":
		return lipgloss.NewStyle().Foreground(Warning)
	case "Advanced":
		return lipgloss.NewStyle().Foreground(Error)
	}
	return lipgloss.NewStyle().Foreground(TextDim)
}
