package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quizReply = func() string {
	q := `{"question":"How do you say %s?","options":[{"id":"a","text":"uno"},{"id":"b","text":"dos"},{"id":"c","text":"tres"},{"id":"d","text":"cuatro"}],"correctAnswer":"b","explanation":"Dos is two."}`
	var qs []string
	for _, w := range []string{"one", "two", "three", "four", "five"} {
		qs = append(qs, fmt.Sprintf(q, w))
	}
	return `{"questions":[` + strings.Join(qs, ",") + `]}`
}()

func fakeGroq(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat *struct{} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		system := body.Messages[0].Content

		content := "¡Hola! ¿Qué tal?"
		switch {
		case body.ResponseFormat != nil && strings.Contains(system, `"pronunciation"`):
			content = `{"pronunciation":"good","grammar":"needs-work","corrections":["Estoy bien"],"score":70}`
		case body.ResponseFormat != nil && strings.Contains(system, `"vocabulary"`):
			content = `{"title":"Saludos","body":"Hola. Buenos días.","vocabulary":[{"term":"hola","meaning":"hello"}]}`
		case body.ResponseFormat != nil && strings.Contains(system, `"correctAnswer"`):
			content = quizReply
		case strings.HasPrefix(system, "Translate"):
			content = "Hi! How's it going?"
		case system == "You are a language tutor.":
			content = "Hola amigo"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "test-model",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
			"usage":   map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		})
	}))
	t.Cleanup(srv.Close)

	t.Setenv("LINGUASPARK_GROQ_API_URL", srv.URL)
	t.Setenv("LINGUASPARK_GROQ_API_KEY", "gsk-test")
	t.Setenv("LINGUASPARK_LLM_PROVIDER", "groq")
	t.Setenv("LINGUASPARK_REDIS_URL", "")
	t.Setenv("LINGUASPARK_LOG_LEVEL", "error")
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestCLIFlow(t *testing.T) {
	fakeGroq(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "", "onboard", "spanish", "--name", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Ana")
	assert.Contains(t, out, "Learning Spanish")

	out, err = run(t, db, "", "lessons", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish lessons")
	assert.Contains(t, out, "unlocks at 90%")

	out, err = run(t, db, "", "lessons", "study", "basics-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Saludos")
	assert.Contains(t, out, "hello")

	_, err = run(t, db, "", "lessons", "study", "practical-1", "reading")
	assert.Error(t, err)

	out, err = run(t, db, "Yo es bien\n/translate 0\n/quit\n", "practice", "--scenario", "restaurant")
	require.NoError(t, err)
	assert.Contains(t, out, "At a Restaurant")
	assert.Contains(t, out, "Hi! How's it going?")
	assert.Contains(t, out, "Estoy bien")

	out, err = run(t, db, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "At a Restaurant")
	assert.Contains(t, out, "3 msgs")

	out, err = run(t, db, "", "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
}

func TestResetRequiresConfirmation(t *testing.T) {
	fakeGroq(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "", "reset")
	assert.Error(t, err)

	out, err := run(t, db, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All learner data deleted.")
}

func TestVersion(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "v.db"), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "linguaspark (devel)\n", out)
}

func TestQuiz(t *testing.T) {
	fakeGroq(t)
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, db, "", "onboard", "spanish")
	require.NoError(t, err)

	out, err := run(t, db, "b\nB\nzz\n1\n2\n4\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish quiz")
	assert.Contains(t, out, "Question 5 of 5")
	assert.Contains(t, out, "Answer with a-d or 1-4.")
	assert.Contains(t, out, "The answer is dos.")
	assert.Contains(t, out, "Dos is two.")
	assert.Contains(t, out, "3/5")
	assert.Contains(t, out, "Good effort! Keep practicing!")
}

func TestQuizStopsAtEndOfInput(t *testing.T) {
	fakeGroq(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "b\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "1/1")
	assert.Contains(t, out, "Perfect score! Excellent work!")
}

func TestTyping(t *testing.T) {
	fakeGroq(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "Hola amigo\n", "typing", "--language", "spanish", "--difficulty", "beginner")
	require.NoError(t, err)
	assert.Contains(t, out, "Spanish typing test")
	assert.Contains(t, out, "Hola amigo")
	assert.Contains(t, out, "100% (0 errors)")

	_, err = run(t, db, "", "typing", "--language", "klingon")
	assert.Error(t, err)
}
