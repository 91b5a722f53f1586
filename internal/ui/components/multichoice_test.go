package components

import (
	"strings"
	"testing"
)

func sampleChoice() MultiChoice {
	return NewMultiChoice("Which word means hello?", []Choice{
		{Label: "a", Text: "adiós"},
		{Label: "b", Text: "hola"},
		{Label: "c", Text: "gracias"},
		{Label: "d", Text: "perdón"},
	}, "b")
}

func TestMultiChoiceUnanswered(t *testing.T) {
	m := sampleChoice()
	out := m.View()
	for _, want := range []string{"Which word means hello?", "A)  adiós", "B)  hola", "D)  perdón"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view, got %q", want, out)
		}
	}
	if strings.Contains(out, "▸") {
		t.Error("unanswered question should have no marker")
	}
	if m.IsCorrect() {
		t.Error("unanswered question should not be correct")
	}
}

func TestMultiChoiceAnswer(t *testing.T) {
	m := sampleChoice()

	wrong := m.Answer("c")
	if wrong.IsCorrect() {
		t.Error("expected wrong answer")
	}
	if !strings.Contains(wrong.View(), "▸ C)  gracias") {
		t.Errorf("expected marker on chosen option, got %q", wrong.View())
	}

	right := m.Answer("b")
	if !right.IsCorrect() {
		t.Error("expected correct answer")
	}
	if m.Answered() {
		t.Error("Answer should not modify the original")
	}
}
