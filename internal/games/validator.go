package games

import (
	"fmt"
	"strings"
)

// Validator checks one generated question. The schema already guarantees
// shape; validators catch what a schema cannot express.
type Validator interface {
	Name() string
	Validate(q Question) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Question  int
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: validator %q: %s", e.Question, e.Validator, e.Message)
}

// DefaultValidators returns the checks every generated quiz must pass.
func DefaultValidators() []Validator {
	return []Validator{TextValidator{}, OptionsValidator{}}
}

// Validate runs validators over every question and rejects repeated
// questions. The first failure is returned.
func Validate(questions []Question, validators ...Validator) error {
	if len(questions) == 0 {
		return &ValidationError{Validator: "quiz", Message: "no questions"}
	}
	seen := make(map[string]int, len(questions))
	for _, q := range questions {
		for _, v := range validators {
			if err := v.Validate(q); err != nil {
				return err
			}
		}
		key := normalize(q.Question)
		if first, ok := seen[key]; ok {
			return &ValidationError{Validator: "quiz", Question: q.ID, Message: fmt.Sprintf("repeats question %d", first)}
		}
		seen[key] = q.ID
	}
	return nil
}

// TextValidator requires a question and bounds its length.
type TextValidator struct{}

func (TextValidator) Name() string { return "text" }

func (v TextValidator) Validate(q Question) *ValidationError {
	switch n := len([]rune(strings.TrimSpace(q.Question))); {
	case n == 0:
		return &ValidationError{Validator: v.Name(), Question: q.ID, Message: "question is empty"}
	case n > 300:
		return &ValidationError{Validator: v.Name(), Question: q.ID, Message: "question exceeds 300 characters"}
	}
	return nil
}

// OptionsValidator requires distinct, non-empty options and a correct
// answer that names one of them.
type OptionsValidator struct{}

func (OptionsValidator) Name() string { return "options" }

func (v OptionsValidator) Validate(q Question) *ValidationError {
	if len(q.Options) < 2 {
		return &ValidationError{Validator: v.Name(), Question: q.ID, Message: "fewer than two options"}
	}
	ids := make(map[string]bool, len(q.Options))
	texts := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if ids[o.ID] {
			return &ValidationError{Validator: v.Name(), Question: q.ID, Message: fmt.Sprintf("option id %q repeated", o.ID)}
		}
		ids[o.ID] = true
		t := normalize(o.Text)
		if t == "" {
			return &ValidationError{Validator: v.Name(), Question: q.ID, Message: fmt.Sprintf("option %q is empty", o.ID)}
		}
		if texts[t] {
			return &ValidationError{Validator: v.Name(), Question: q.ID, Message: fmt.Sprintf("option %q repeats another option", o.ID)}
		}
		texts[t] = true
	}
	if !ids[q.CorrectAnswer] {
		return &ValidationError{Validator: v.Name(), Question: q.ID, Message: fmt.Sprintf("correctAnswer %q is not an option", q.CorrectAnswer)}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
