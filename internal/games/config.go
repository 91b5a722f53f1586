// Package games runs the short activities outside lessons: a generated
// multiple-choice quiz and a timed typing test. Both fall back to canned
// content when the model is unavailable.
package games

import "time"

// QuizLength is the number of questions in every quiz.
const QuizLength = 5

// Config holds generation and timing settings.
type Config struct {
	QuizMaxTokens   int
	TypingMaxTokens int
	Temperature     float64

	// PassageLimit caps a typing passage, in characters.
	PassageLimit int

	// TypingTime is the time allowed for one typing test.
	TypingTime time.Duration
}

// DefaultConfig returns the settings the CLI uses.
func DefaultConfig() Config {
	return Config{
		QuizMaxTokens:   1500,
		TypingMaxTokens: 256,
		Temperature:     0.7,
		PassageLimit:    280,
		TypingTime:      60 * time.Second,
	}
}
