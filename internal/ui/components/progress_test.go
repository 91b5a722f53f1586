package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBarWidth(t *testing.T) {
	bar := NewProgressBar("", 50, false, 20)
	out := bar.View()
	if got := lipgloss.Width(out); got != 20 {
		t.Errorf("expected width 20, got %d", got)
	}
	if n := strings.Count(out, "█"); n != 10 {
		t.Errorf("expected 10 filled cells, got %d", n)
	}
}

func TestProgressBarClamps(t *testing.T) {
	over := NewProgressBar("", 150, true, 16).View()
	if strings.Contains(over, "░") {
		t.Error("over-full bar should have no empty cells")
	}
	if !strings.Contains(over, "100%") {
		t.Errorf("expected clamped percent label, got %q", over)
	}

	under := NewProgressBar("", -5, false, 8).View()
	if strings.Contains(under, "█") {
		t.Error("negative percent should render empty")
	}
}
