package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.Info("dealer starting", "round", 1)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "dealer starting" {
		t.Errorf("msg = %v, want %q", entry["msg"], "dealer starting")
	}
	if entry["round"] != float64(1) {
		t.Errorf("round = %v, want 1", entry["round"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if buf.Len() == 0 {
		t.Fatal("warn entry should be written")
	}
	if lines != 1 {
		t.Errorf("got %d log lines, want 1", lines)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug/info entries should be filtered at WARN level")
	}
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug).WithGame("g-42").WithPlayer(2)
	l.Info("token placed", "slot", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["game_id"] != "g-42" {
		t.Errorf("game_id = %v, want g-42", entry["game_id"])
	}
	if entry["player"] != float64(2) {
		t.Errorf("player = %v, want 2", entry["player"])
	}
	if entry["slot"] != float64(7) {
		t.Errorf("slot = %v, want 7", entry["slot"])
	}
}

func TestChildDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, LevelDebug)
	_ = parent.WithPlayer(1)
	parent.Info("plain")

	if strings.Contains(buf.String(), "player") {
		t.Error("parent logger should not carry child attributes")
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Error("discarded")
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewFile(t *testing.T) {
	path := t.TempDir() + "/game.log"
	l, err := NewFile(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	l.Info("started")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Close twice is a no-op.
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
