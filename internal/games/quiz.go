package games

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/progress"
)

// ErrNotAnOption is returned by Check for an answer that names no option.
var ErrNotAnOption = errors.New("not one of the options")

// Option is one choice of a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a multiple-choice question with exactly one correct option.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Correct returns the correct option.
func (q Question) Correct() Option {
	for _, o := range q.Options {
		if o.ID == q.CorrectAnswer {
			return o
		}
	}
	return Option{}
}

// Choose resolves answer to an option. An answer is an option id in any
// case ("b", "B") or a 1-based position ("2").
func (q Question) Choose(answer string) (Option, error) {
	a := strings.ToLower(strings.TrimSpace(answer))
	for _, o := range q.Options {
		if strings.ToLower(o.ID) == a {
			return o, nil
		}
	}
	if n, err := strconv.Atoi(a); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1], nil
	}
	return Option{}, fmt.Errorf("%q: %w", answer, ErrNotAnOption)
}

// Check reports whether answer picks the correct option.
func (q Question) Check(answer string) (bool, error) {
	o, err := q.Choose(answer)
	if err != nil {
		return false, err
	}
	return o.ID == q.CorrectAnswer, nil
}

// Quiz is the outcome of a Quiz call.
type Quiz struct {
	Language  string
	Level     string
	Questions []Question

	// Generated is false when Questions is the canned set.
	Generated bool
	Err       error
}

// Score tallies answers to a quiz.
type Score struct {
	Correct int
	Total   int
}

// Record adds one answer.
func (s *Score) Record(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Verdict is the closing line shown for the score.
func (s Score) Verdict() string {
	switch {
	case s.Total > 0 && s.Correct == s.Total:
		return "Perfect score! Excellent work!"
	case s.Total > 0 && s.Correct*10 >= s.Total*7:
		return "Great job! You did well!"
	default:
		return "Good effort! Keep practicing!"
	}
}

// QuizLevel maps finished lessons to the level the quiz is pitched at.
func QuizLevel(completedLessons int) string {
	switch {
	case completedLessons <= 3:
		return "beginner"
	case completedLessons <= 7:
		return "intermediate"
	default:
		return "advanced"
	}
}

// QuizMaster generates quizzes pitched at the learner's progress.
type QuizMaster struct {
	provider   llm.Provider
	progress   *progress.Store
	cfg        Config
	validators []Validator
	log        *zap.Logger
}

// NewQuizMaster creates a QuizMaster with the standard validators.
func NewQuizMaster(provider llm.Provider, ps *progress.Store, cfg Config, log *zap.Logger) *QuizMaster {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizMaster{
		provider:   provider,
		progress:   ps,
		cfg:        cfg,
		validators: DefaultValidators(),
		log:        log,
	}
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

// Quiz generates five questions on the learner's language. A failed or
// unusable generation yields the canned quiz with Err set; only storage
// and context errors are returned.
func (m *QuizMaster) Quiz(ctx context.Context) (*Quiz, error) {
	profile, err := m.progress.Profile(ctx)
	if err != nil {
		return nil, err
	}
	language := profile.Language
	if language == "" {
		language = "english"
	}
	quiz := &Quiz{Language: language, Level: QuizLevel(profile.CompletedLessons)}

	questions, genErr := m.generate(llm.WithPurpose(ctx, llm.PurposeQuiz), language, profile.CompletedLessons)
	if genErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.log.Warn("quiz fell back to canned questions", zap.String("language", language), zap.Error(genErr))
		quiz.Questions = CannedQuiz()
		quiz.Err = genErr
		return quiz, nil
	}
	quiz.Questions = questions
	quiz.Generated = true
	return quiz, nil
}

func (m *QuizMaster) generate(ctx context.Context, language string, completed int) ([]Question, error) {
	resp, err := m.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt(lessons.DisplayLanguage(language), completed),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: quizUserMessage}},
		Schema:      QuizSchema,
		MaxTokens:   m.cfg.QuizMaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	var out quizOutput
	if err := llm.Decode(resp, &out); err != nil {
		return nil, err
	}
	for i := range out.Questions {
		out.Questions[i].ID = i + 1
	}
	if err := Validate(out.Questions, m.validators...); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out.Questions, nil
}
