package games

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/llm"
)

// TypingLanguages are the languages a typing test can be taken in.
var TypingLanguages = []string{"english", "spanish", "french", "hindi", "japanese", "chinese"}

// Difficulties are the passage levels a typing test offers.
var Difficulties = []string{"beginner", "intermediate", "advanced"}

// ErrUnsupported is returned for a language or difficulty outside the
// lists above.
var ErrUnsupported = errors.New("unsupported typing option")

// Passage is the text of one typing test.
type Passage struct {
	Language   string
	Difficulty string
	Text       string

	// Generated is false when Text is the canned passage.
	Generated bool
	Err       error
}

// TypingTest produces passages for typing practice.
type TypingTest struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewTypingTest creates a TypingTest.
func NewTypingTest(provider llm.Provider, cfg Config, log *zap.Logger) *TypingTest {
	if log == nil {
		log = zap.NewNop()
	}
	return &TypingTest{provider: provider, cfg: cfg, log: log}
}

// TimeLimit is the time allowed for one attempt.
func (t *TypingTest) TimeLimit() time.Duration {
	return t.cfg.TypingTime
}

// Passage generates a passage in language at difficulty, capped at the
// configured length. A failed or empty generation yields the canned
// passage for the language with Err set.
func (t *TypingTest) Passage(ctx context.Context, language, difficulty string) (*Passage, error) {
	if !slices.Contains(TypingLanguages, language) {
		return nil, fmt.Errorf("language %q: %w", language, ErrUnsupported)
	}
	if !slices.Contains(Difficulties, difficulty) {
		return nil, fmt.Errorf("difficulty %q: %w", difficulty, ErrUnsupported)
	}
	p := &Passage{Language: language, Difficulty: difficulty}

	text, err := t.generate(llm.WithPurpose(ctx, llm.PurposeTypingText), language, difficulty)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.log.Warn("typing passage fell back to canned text", zap.String("language", language), zap.Error(err))
		p.Text = FallbackPassage(language)
		p.Err = err
		return p, nil
	}
	p.Text = text
	p.Generated = true
	return p, nil
}

func (t *TypingTest) generate(ctx context.Context, language, difficulty string) (string, error) {
	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      typingSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: typingUserMessage(language, difficulty)}},
		MaxTokens:   t.cfg.TypingMaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	text := strings.Join(strings.Fields(resp.Text()), " ")
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty passage")}
	}
	if r := []rune(text); t.cfg.PassageLimit > 0 && len(r) > t.cfg.PassageLimit {
		text = strings.TrimSpace(string(r[:t.cfg.PassageLimit]))
	}
	return text, nil
}

// TypingResult scores one attempt.
type TypingResult struct {
	WPM      int
	Accuracy int
	Errors   int
}

// ScoreTyping compares typed against target character by character.
// Accuracy is the share of target characters typed correctly in place;
// characters left untyped count as errors. WPM counts typed words over
// elapsed, treating anything under a second as a full minute.
func ScoreTyping(target, typed string, elapsed time.Duration) TypingResult {
	want, got := []rune(target), []rune(typed)
	correct := 0
	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] == got[i] {
			correct++
		}
	}

	var res TypingResult
	res.Errors = len(want) - correct
	if len(want) > 0 {
		res.Accuracy = int(math.Round(float64(correct) / float64(len(want)) * 100))
	}
	minutes := elapsed.Minutes()
	if elapsed < time.Second {
		minutes = 1
	}
	res.WPM = int(math.Round(float64(len(strings.Fields(typed))) / minutes))
	return res
}

// WordMark is one target word and whether it was typed exactly.
type WordMark struct {
	Word    string
	Correct bool
}

// MarkWords pairs each target word with the word typed in its place.
func MarkWords(target, typed string) []WordMark {
	want, got := strings.Fields(target), strings.Fields(typed)
	marks := make([]WordMark, len(want))
	for i, w := range want {
		marks[i] = WordMark{Word: w, Correct: i < len(got) && got[i] == w}
	}
	return marks
}
