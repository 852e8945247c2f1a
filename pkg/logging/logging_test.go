package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want slog.Level
	}{
		{name: "Debug", in: "DEBUG", want: slog.LevelDebug},
		{name: "Info Lowercase", in: "info", want: slog.LevelInfo},
		{name: "Warn", in: "WARN", want: slog.LevelWarn},
		{name: "Error", in: "ERROR", want: slog.LevelError},
		{name: "Unknown Falls Back", in: "chatty", want: slog.LevelWarn},
		{name: "Empty Falls Back", in: "", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("INFO", &buf)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked through INFO logger: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info record missing from output: %q", out)
	}
}
