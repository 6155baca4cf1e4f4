// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(
		WithOutput(path),
		WithLevel("warn"),
		WithFields(map[string]any{"component": "test", "": "dropped"}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", zap.Int("bars", 3))
	if err := Sync(logger); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["component"] != "test" || entry["bars"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Error("empty field key was kept")
	}
}

func TestNew_Development(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dev.log")
	logger, err := New(WithOutput(path), WithDevelopment(true), WithLevel("debug"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("console line")
	_ = Sync(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "console line") || strings.HasPrefix(string(data), "{") {
		t.Errorf("development output = %q", data)
	}
}
