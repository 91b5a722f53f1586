package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaspark/internal/ui/theme"
)

// Choice is one labelled option of a MultiChoice.
type Choice struct {
	Label string
	Text  string
}

// MultiChoice renders a multiple-choice question. Before an answer is
// given the options are listed plainly; afterwards the correct option is
// green and a wrong pick is red.
type MultiChoice struct {
	Question string
	Choices  []Choice
	Correct  string
	Chosen   string
}

// NewMultiChoice creates an unanswered multiple-choice question.
func NewMultiChoice(question string, choices []Choice, correct string) MultiChoice {
	return MultiChoice{
		Question: question,
		Choices:  choices,
		Correct:  correct,
	}
}

// Answer returns a copy with label chosen.
func (m MultiChoice) Answer(label string) MultiChoice {
	m.Chosen = label
	return m
}

// Answered reports whether a choice has been made.
func (m MultiChoice) Answered() bool {
	return m.Chosen != ""
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for _, c := range m.Choices {
		prefix := "  "
		if c.Label == m.Chosen {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, strings.ToUpper(c.Label), c.Text)

		switch {
		case !m.Answered():
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		case c.Label == m.Correct:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case c.Label == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		}
	}

	return s
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.Chosen == m.Correct
}
