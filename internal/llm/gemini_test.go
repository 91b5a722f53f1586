package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"

	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/tutor"
)

func geminiServer(t *testing.T, got *map[string]any, text, finish string) *llm.GeminiProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if got != nil {
			if err := json.Unmarshal(raw, got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 70, "candidatesTokenCount": 20, "totalTokenCount": 90},
		})
	}))
	t.Cleanup(server.Close)
	return llm.NewTestGeminiProvider(t, server.URL, "gemini-2.5-flash")
}

func TestGeminiProvider_PracticeConversation(t *testing.T) {
	var body map[string]any
	p := geminiServer(t, &body, "¡Claro! La paella tarda veinte minutos.", "STOP")

	resp, err := p.Generate(context.Background(), practiceRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "¡Claro! La paella tarda veinte minutos." {
		t.Errorf("Text() = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 90 || resp.StopReason != "end" {
		t.Errorf("usage %+v, stop %q", resp.Usage, resp.StopReason)
	}
	contents, _ := body["contents"].([]any)
	if len(contents) != 5 {
		t.Fatalf("expected opening turn plus 4 contents, got %d", len(contents))
	}
	if role := contents[0].(map[string]any)["role"]; role != "user" {
		t.Errorf("first content role = %v, want user", role)
	}
	if role := contents[1].(map[string]any)["role"]; role != "model" {
		t.Errorf("greeting role = %v, want model", role)
	}
}

func TestGeminiProvider_Feedback(t *testing.T) {
	p := geminiServer(t, nil, `{"pronunciation":"good","grammar":"good","corrections":[],"score":95}`, "STOP")

	resp, err := p.Generate(context.Background(), llm.Request{
		System:   "Evaluate the Spanish of this message.",
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "Para dos, por favor."}},
		Schema:   tutor.FeedbackSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fb struct {
		Score int `json:"score"`
	}
	if err := llm.Decode(resp, &fb); err != nil || fb.Score != 95 {
		t.Fatalf("Decode() = %v, score %d", err, fb.Score)
	}
}

func TestGeminiProvider_SafetyStop(t *testing.T) {
	p := geminiServer(t, nil, "", "SAFETY")

	_, err := p.Generate(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "Write a reading passage about a market."}},
		Schema:   lessons.SectionSchema,
	})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestGeminiSchema_Feedback(t *testing.T) {
	s := llm.GeminiSchema(tutor.FeedbackSchema.Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	if got := s.Properties["pronunciation"].Enum; len(got) != 2 || got[1] != "needs-work" {
		t.Errorf("pronunciation enum = %v", got)
	}
	score := s.Properties["score"]
	if score.Type != genai.TypeInteger || score.Minimum == nil || *score.Minimum != 0 || score.Maximum == nil || *score.Maximum != 100 {
		t.Errorf("score bounds not carried: %+v", score)
	}
	if s.Properties["corrections"].Items.Type != genai.TypeString {
		t.Errorf("corrections items = %s", s.Properties["corrections"].Items.Type)
	}
	want := []string{"pronunciation", "grammar", "corrections", "score"}
	if len(s.PropertyOrdering) != len(want) {
		t.Fatalf("PropertyOrdering = %v", s.PropertyOrdering)
	}
	for i := range want {
		if s.PropertyOrdering[i] != want[i] {
			t.Errorf("PropertyOrdering = %v, want %v", s.PropertyOrdering, want)
			break
		}
	}
}

func TestGeminiSchema_Recommendations(t *testing.T) {
	s := llm.GeminiSchema(tutor.RecommendationSchema.Definition)
	list := s.Properties["recommendations"]
	if list.Type != genai.TypeArray || list.MinItems == nil || *list.MinItems != 1 || list.MaxItems == nil || *list.MaxItems != 3 {
		t.Fatalf("item bounds not carried: %+v", list)
	}
	if got := list.Items.Properties["type"].Enum; len(got) != 3 {
		t.Errorf("activity kinds = %v", got)
	}
	if len(list.Items.Required) != 5 {
		t.Errorf("required = %v", list.Items.Required)
	}
}

func TestGeminiProvider_ShortModelNames(t *testing.T) {
	p, err := llm.NewGeminiProvider(context.Background(), llm.GeminiConfig{APIKey: "test-key", Model: "gemini-flash-lite"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "gemini-2.5-flash-lite" {
		t.Errorf("ModelID() = %q", p.ModelID())
	}
}
