package llm_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/linguaspark/internal/lessons"
	"github.com/abhisek/linguaspark/internal/llm"
	"github.com/abhisek/linguaspark/internal/tutor"
)

func TestValidate_Feedback(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"graded turn", `{"pronunciation":"good","grammar":"needs-work","corrections":["Use 'una' with 'mesa'"],"score":72}`, false},
		{"no corrections", `{"pronunciation":"good","grammar":"good","corrections":[],"score":100}`, false},
		{"unknown rating", `{"pronunciation":"great","grammar":"good","corrections":[],"score":90}`, true},
		{"score above 100", `{"pronunciation":"good","grammar":"good","corrections":[],"score":120}`, true},
		{"fractional score", `{"pronunciation":"good","grammar":"good","corrections":[],"score":80.5}`, true},
		{"missing corrections", `{"pronunciation":"good","grammar":"good","score":80}`, true},
		{"extra field", `{"pronunciation":"good","grammar":"good","corrections":[],"score":80,"tip":"smile"}`, true},
		{"prose instead of JSON", `Great job! Your grammar is good.`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := llm.Validate(tutor.FeedbackSchema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Recommendations(t *testing.T) {
	valid := `{"recommendations":[{"title":"Ordering Tapas","type":"Practice","duration":"10 min","icon":"🍽️","link":"/practice/restaurant"}]}`
	if err := llm.Validate(tutor.RecommendationSchema, json.RawMessage(valid)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty list", `{"recommendations":[]}`},
		{"four items", `{"recommendations":[` + item("Lesson") + `,` + item("Game") + `,` + item("Practice") + `,` + item("Lesson") + `]}`},
		{"unknown kind", `{"recommendations":[` + item("Podcast") + `]}`},
		{"bare array", `[` + item("Lesson") + `]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := llm.Validate(tutor.RecommendationSchema, json.RawMessage(tt.raw)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func item(kind string) string {
	return `{"title":"Numbers","type":"` + kind + `","duration":"5 min","icon":"🔢","link":"/games/numbers"}`
}

func TestValidate_LessonSection(t *testing.T) {
	valid := `{"title":"Saying Hello","body":"Hola, me llamo Ana.","vocabulary":[{"term":"hola","meaning":"hello"}]}`
	if err := llm.Validate(lessons.SectionSchema, json.RawMessage(valid)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	noVocab := `{"title":"Saying Hello","body":"Hola.","vocabulary":[]}`
	if err := llm.Validate(lessons.SectionSchema, json.RawMessage(noVocab)); err != nil {
		t.Fatalf("empty vocabulary should be accepted, got %v", err)
	}

	missingMeaning := `{"title":"Saying Hello","body":"Hola.","vocabulary":[{"term":"hola"}]}`
	err := llm.Validate(lessons.SectionSchema, json.RawMessage(missingMeaning))
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidResponse, got %T (%v)", err, err)
	}
	if string(invalid.Content) != missingMeaning {
		t.Errorf("invalid content not carried: %s", invalid.Content)
	}
}

func TestValidate_NilSchemaAcceptsText(t *testing.T) {
	if err := llm.Validate(nil, json.RawMessage(`"¿Qué te gustaría pedir?"`)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	var fb struct {
		Score int `json:"score"`
	}
	ok := &llm.Response{Content: json.RawMessage(`{"score":85}`)}
	if err := llm.Decode(ok, &fb); err != nil || fb.Score != 85 {
		t.Fatalf("Decode() = %v, score %d", err, fb.Score)
	}

	bad := &llm.Response{Content: json.RawMessage(`{"score":"high"}`)}
	var invalid *llm.ErrInvalidResponse
	if err := llm.Decode(bad, &fb); !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidResponse, got %T", err)
	}
}
