package games

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linguaspark/internal/llm"
)

func TestPassage_Generated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Hola a todos.\nHoy practicamos   la escritura.  "})
	p, err := NewTypingTest(mock, DefaultConfig(), nil).Passage(t.Context(), "spanish", "beginner")
	require.NoError(t, err)
	assert.True(t, p.Generated)
	assert.Equal(t, "Hola a todos. Hoy practicamos la escritura.", p.Text)

	req := mock.Requests()[0]
	assert.Nil(t, req.Schema)
	assert.Equal(t, typingSystemPrompt, req.System)
	assert.Contains(t, req.Messages[0].Content, "beginner level spanish passage")
}

func TestPassage_TruncatesByCharacter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PassageLimit = 10
	mock := llm.NewMockProvider(llm.MockResponse{Text: strings.Repeat("速い", 20)})
	p, err := NewTypingTest(mock, cfg, nil).Passage(t.Context(), "japanese", "advanced")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("速い", 5), p.Text)
}

func TestPassage_FallsBack(t *testing.T) {
	cases := []struct {
		name     string
		language string
		reply    llm.MockResponse
		want     string
	}{
		{"provider error", "french", llm.MockResponse{Err: &llm.Failure{Op: llm.OpChat, StatusCode: 503, Message: "unavailable"}}, typingFallbacks["french"]},
		{"empty text", "hindi", llm.MockResponse{Content: json.RawMessage(`"   "`)}, typingFallbacks["hindi"]},
		{"chinese", "chinese", llm.MockResponse{Err: &llm.Failure{Op: llm.OpChat, Message: "offline"}}, typingFallbacks["chinese"]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewTypingTest(llm.NewMockProvider(tc.reply), DefaultConfig(), nil).Passage(t.Context(), tc.language, "intermediate")
			require.NoError(t, err)
			assert.False(t, p.Generated)
			assert.Error(t, p.Err)
			assert.Equal(t, tc.want, p.Text)
		})
	}
}

func TestPassage_RejectsUnsupported(t *testing.T) {
	tt := NewTypingTest(llm.NewMockProvider(), DefaultConfig(), nil)
	_, err := tt.Passage(t.Context(), "klingon", "beginner")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = tt.Passage(t.Context(), "english", "expert")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFallbackPassage(t *testing.T) {
	for _, lang := range TypingLanguages {
		assert.NotEmpty(t, typingFallbacks[lang], lang)
	}
	assert.Equal(t, typingFallbacks["english"], FallbackPassage("klingon"))
	assert.Equal(t, typingFallbacks["arabic"], FallbackPassage("arabic"))
}

func TestScoreTyping(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		typed   string
		elapsed time.Duration
		want    TypingResult
	}{
		{"perfect in thirty seconds", "one two three four", "one two three four", 30 * time.Second, TypingResult{WPM: 8, Accuracy: 100, Errors: 0}},
		{"one wrong character", "abcd", "abxd", time.Minute, TypingResult{WPM: 1, Accuracy: 75, Errors: 1}},
		{"unfinished", "abcdefghij", "abcde", time.Minute, TypingResult{WPM: 1, Accuracy: 50, Errors: 5}},
		{"multibyte runes", "héllo", "héllo", time.Minute, TypingResult{WPM: 1, Accuracy: 100, Errors: 0}},
		{"no time elapsed", "a b", "a b", 0, TypingResult{WPM: 2, Accuracy: 100, Errors: 0}},
		{"nothing typed", "abc", "", time.Minute, TypingResult{WPM: 0, Accuracy: 0, Errors: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScoreTyping(tc.target, tc.typed, tc.elapsed))
		})
	}
}

func TestMarkWords(t *testing.T) {
	got := MarkWords("the quick brown fox", "the quack brown")
	assert.Equal(t, []WordMark{
		{Word: "the", Correct: true},
		{Word: "quick", Correct: false},
		{Word: "brown", Correct: true},
		{Word: "fox", Correct: false},
	}, got)
}

func TestValidate(t *testing.T) {
	base := func() Question {
		return Question{
			ID:       3,
			Question: "Pick one",
			Options: []Option{
				{ID: "a", Text: "x"}, {ID: "b", Text: "y"},
			},
			CorrectAnswer: "a",
		}
	}
	cases := []struct {
		name      string
		mutate    func(q *Question)
		validator string
	}{
		{"valid", func(q *Question) {}, ""},
		{"empty question", func(q *Question) { q.Question = "" }, "text"},
		{"too long", func(q *Question) { q.Question = strings.Repeat("x", 301) }, "text"},
		{"one option", func(q *Question) { q.Options = q.Options[:1] }, "options"},
		{"repeated id", func(q *Question) { q.Options[1].ID = "a" }, "options"},
		{"blank option", func(q *Question) { q.Options[1].Text = " " }, "options"},
		{"answer missing", func(q *Question) { q.CorrectAnswer = "c" }, "options"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := base()
			tc.mutate(&q)
			err := Validate([]Question{q}, DefaultValidators()...)
			if tc.validator == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.validator, verr.Validator)
			assert.Equal(t, 3, verr.Question)
		})
	}

	assert.Error(t, Validate(nil))
}
