package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_TextFormatWritesComponentAttribute(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "text", &buf)

	New("reader").Info("loaded", "files", 3)

	out := buf.String()
	if !strings.Contains(out, "component=reader") {
		t.Errorf("expected component attribute, got: %s", out)
	}
	if !strings.Contains(out, "files=3") {
		t.Errorf("expected files attribute, got: %s", out)
	}
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "json", &buf)

	New("validator").Debug("not shown")
	New("validator").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("debug record leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
