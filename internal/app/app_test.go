package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/linguaspark/internal/config"
	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/store"
)

// fakeGroq answers chat completions by inspecting the request: JSON mode
// gets a structured answer, translations get a fixed string, everything
// else gets a conversational reply.
func fakeGroq(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat *struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		system := body.Messages[0].Content

		var content string
		switch {
		case body.ResponseFormat != nil && strings.Contains(system, `"vocabulary"`):
			content = `{"title":"Saludos","body":"Hola, me llamo Ana.","vocabulary":[{"term":"hola","meaning":"hello"}]}`
		case body.ResponseFormat != nil && strings.Contains(system, `"pronunciation"`):
			content = "```json\n{\"pronunciation\":\"good\",\"grammar\":\"needs-work\",\"corrections\":[\"Estoy bien\"],\"score\":65}\n```"
		case body.ResponseFormat != nil:
			content = `{"recommendations":[{"title":"Ser vs Estar","type":"Lesson","duration":"15 min","icon":"📘","link":"/lessons/advanced-1"}]}`
		case strings.HasPrefix(system, "Translate"):
			content = "Hello! How are you?"
		default:
			content = "¡Hola! ¿Cómo estás?"
		}

		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   llm.DefaultChatModel,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	srv := fakeGroq(t)

	cfg := config.Config{
		DBPath:     filepath.Join(t.TempDir(), "nested", "linguaspark.db"),
		SessionTTL: time.Hour,
		LLM:        llm.DefaultConfig(),
	}
	cfg.LLM.Groq.BaseURL = srv.URL
	cfg.LLM.Groq.APIKey = "gsk-test"

	a, err := New(t.Context(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestOnboardingToPractice(t *testing.T) {
	a := newTestApp(t)
	ctx := t.Context()

	p, err := a.Progress.Initialize(ctx, "spanish")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, 10, p.Progress)
	assert.Equal(t, 20, p.DailyGoal)
	assert.Equal(t, 1, p.CompletedLessons)

	// A second session on the same day leaves the streak alone.
	p, err = a.Progress.UpdateStreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Streak)

	content, err := a.Lessons.Study(ctx, "basics-1", lessons.SectionReading)
	require.NoError(t, err)
	assert.Equal(t, "Saludos", content.Title)

	_, err = a.Lessons.Study(ctx, "practical-1", lessons.SectionReading)
	assert.ErrorIs(t, err, lessons.ErrLocked)

	greeting, err := a.Practice.Start(ctx, "casual", "spanish", "english")
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! ¿Cómo estás?", greeting.Text)
	assert.Equal(t, "Hello! How are you?", greeting.Translation)

	ex, err := a.Practice.Reply(ctx, "Yo es bien")
	require.NoError(t, err)
	require.NotNil(t, ex.User.Feedback)
	assert.Equal(t, 65, ex.User.Feedback.Score)
	assert.False(t, ex.User.Feedback.GrammarOK())

	records, err := a.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Turns, 3)

	recs, err := a.Recommender.Recommend(ctx)
	require.NoError(t, err)
	assert.True(t, recs.Generated)

	// Every inference call lands in the event log.
	events, err := a.Store.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: 50})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(events), 5)
	purposes := map[string]bool{}
	for _, e := range events {
		purposes[e.Purpose] = true
		assert.True(t, e.Success)
	}
	for _, want := range []string{"lesson", "greeting", "feedback", "conversation", "recommendations"} {
		assert.True(t, purposes[want], "missing purpose %s", want)
	}
}

func TestReset(t *testing.T) {
	a := newTestApp(t)
	ctx := t.Context()

	_, err := a.Progress.Initialize(ctx, "french")
	require.NoError(t, err)
	_, err = a.Lessons.Study(ctx, "basics-1", lessons.SectionWriting)
	require.NoError(t, err)

	require.NoError(t, a.Reset(ctx))

	p, err := a.Progress.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "english", p.Language)
	assert.Zero(t, p.Streak)

	done, err := a.Lessons.Completed(ctx)
	require.NoError(t, err)
	assert.Empty(t, done)
}

func TestPersistsAcrossReopen(t *testing.T) {
	srv := fakeGroq(t)
	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "ls.db"), LLM: llm.DefaultConfig()}
	cfg.LLM.Groq.BaseURL = srv.URL

	a, err := New(t.Context(), cfg, nil)
	require.NoError(t, err)
	_, err = a.Progress.Initialize(t.Context(), "japanese")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(t.Context(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()
	p, err := b.Progress.Profile(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "japanese", p.Language)
}

func TestMisconfiguredProviderFallsBackToGroq(t *testing.T) {
	srv := fakeGroq(t)
	cfg := config.Config{DBPath: filepath.Join(t.TempDir(), "ls.db"), LLM: llm.DefaultConfig()}
	cfg.LLM.Groq.BaseURL = srv.URL
	cfg.LLM.Provider = "anthropic"

	a, err := New(t.Context(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	assert.IsType(t, &llm.GroqProvider{}, a.Provider)
}
