// Package theme holds the terminal styles used by the CLI.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
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
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Reply = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(1, 2)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Question type badges, keyed by the wire name of the type.
var badges = map[string]lipgloss.Style{
	"multipleChoice": lipgloss.NewStyle().Foreground(Primary).Bold(true),
	"trueFalse":      lipgloss.NewStyle().Foreground(Secondary).Bold(true),
	"freeText":       lipgloss.NewStyle().Foreground(Accent).Bold(true),
}

var badgeLabels = map[string]string{
	"multipleChoice": "MULTIPLE CHOICE",
	"trueFalse":      "TRUE / FALSE",
	"freeText":       "FREE TEXT",
}

// Badge renders a short label for a question type.
func Badge(questionType string) string {
	style, ok := badges[questionType]
	if !ok {
		return Hint.Render(questionType)
	}
	return style.Render(badgeLabels[questionType])
}
