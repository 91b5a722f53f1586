package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warning ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"verbose", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewBuildsBothEncodings(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := New("info", format)
		if err != nil {
			t.Fatalf("New(%q): %v", format, err)
		}
		if !l.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("format %q: info should be enabled", format)
		}
		if l.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("format %q: debug should be disabled", format)
		}
	}
}
