package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("info", &buf)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNewEventLogger_InfoLevelDisabled(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "info")
	if el != nil {
		t.Fatal("expected nil event logger at info level")
	}

	// Nil receiver is safe.
	el.Log(map[string]any{"event": "dropout"})
	el.Close()

	if _, err := os.Stat(filepath.Join(dir, "events.jsonl")); !os.IsNotExist(err) {
		t.Error("events.jsonl created at info level")
	}
}

func TestEventLogger_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	if el == nil {
		t.Fatal("expected event logger at debug level")
	}
	defer el.Close()

	el.Log(map[string]any{"event": "graduation", "student": 7})
	el.Log(map[string]any{"event": "dropout", "student": 9})

	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if first["event"] != "graduation" {
		t.Errorf("event = %v, want graduation", first["event"])
	}
	if _, ok := first["time"]; !ok {
		t.Error("time field missing")
	}
}

func TestEventLogger_DoesNotMutateCallerMap(t *testing.T) {
	dir := t.TempDir()
	el := NewEventLogger(dir, "debug")
	defer el.Close()

	event := map[string]any{"event": "course_blocked"}
	el.Log(event)
	if _, ok := event["time"]; ok {
		t.Error("caller map mutated with time field")
	}
}
