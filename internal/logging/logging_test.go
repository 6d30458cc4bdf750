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
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPath(t *testing.T) {
	if got := Path("/work", ""); got != filepath.Join("/work", ".disclose", "logs", "disclose.log") {
		t.Errorf("default path = %q", got)
	}
	if got := Path("/work", "/var/log/x.log"); got != "/var/log/x.log" {
		t.Errorf("absolute path = %q", got)
	}
	if got := Path("/work", "logs/x.log"); got != filepath.Join("/work", "logs", "x.log") {
		t.Errorf("relative path = %q", got)
	}
}

func TestSetupWritesJSON(t *testing.T) {
	dir := t.TempDir()

	logger, closeFn, err := Setup(dir, "", "debug")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("overlay opened", "trigger", "save")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(Path(dir, ""))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, data)
	}
	if entry["msg"] != "overlay opened" || entry["trigger"] != "save" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, _, err := Setup(t.TempDir(), "", "chatty"); err == nil {
		t.Error("Setup should reject an unknown level")
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message missing")
	}
}
