// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ik5/audwave/internal/store"
	"github.com/ik5/audwave/segment"
)

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	vars := env(map[string]string{envDB: filepath.Join(dir, "a.db"), envLogLevel: "error"})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, 2},
		{"unknown command", []string{"dance"}, 2},
		{"help", []string{"help"}, 0},
		{"flag help", []string{"bars", "-h"}, 0},
		{"missing file", []string{"bars"}, 2},
		{"bad amplitude type", []string{"bars", "-type", "loud", "x.wav"}, 2},
		{"bad alignment", []string{"bars", "-align", "sideways", "x.wav"}, 2},
		{"undecodable meter", []string{"meter", filepath.Join(dir, "nothing.wav")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			if got := run(context.Background(), tt.args, &out, &errOut, vars); got != tt.want {
				t.Errorf("run(%v) = %d, want %d; stderr: %s", tt.args, got, tt.want, errOut.String())
			}
		})
	}
}

func TestRun_Bars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "tone.wav")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"bars", "-width", "20", "-height", "4", "-progress", "0.5", path},
		&out, &errOut, env(map[string]string{envDB: filepath.Join(dir, "a.db")}))
	if code != 0 {
		t.Fatalf("run() = %d; stderr: %s", code, errOut.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("printed %d lines, want 6:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "tone.wav  wav  0:01") {
		t.Errorf("header = %q", lines[0])
	}
	for _, l := range lines[1:5] {
		if n := utf8.RuneCountInString(l); n != 20 {
			t.Errorf("bar line %q has %d columns, want 20", l, n)
		}
	}
	if want := strings.Repeat(" ", 10) + "^ 0:00"; lines[5] != want {
		t.Errorf("cursor line = %q, want %q", lines[5], want)
	}
}

func TestRun_BarsDegradesOnUnreadableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"bars", "-width", "8", "-height", "3", filepath.Join(dir, "gone.wav")},
		&out, &errOut, env(map[string]string{envDB: filepath.Join(dir, "a.db"), envLogLevel: "fatal"}))
	if code != 0 {
		t.Fatalf("run() = %d; stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "gone.wav  unreadable  0:00") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_Meter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeWAV(t, dir, "m.wav")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"meter", "-width", "10", path},
		&out, &errOut, env(map[string]string{envDB: filepath.Join(dir, "a.db")}))
	if code != 0 {
		t.Fatalf("run() = %d; stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "peak ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_ExportAndSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db", "audwave.db")
	vars := env(map[string]string{envDB: dbPath})
	path := writeWAV(t, dir, "take.wav")
	outDir := filepath.Join(dir, "out")

	var out, errOut bytes.Buffer
	if code := run(ctx, []string{"export", "-dir", outDir, path}, &out, &errOut, vars); code != 1 {
		t.Fatalf("export without segments = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "no saved segments") {
		t.Errorf("stderr = %q", errOut.String())
	}

	st, err := store.Open(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	sess, err := st.Session(ctx, path, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SaveSegments(ctx, sess.ID, []segment.Segment{{Start: 0, End: 250}, {Start: 500, End: 1000}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	errOut.Reset()
	if code := run(ctx, []string{"export", "-dir", outDir, "-rate", "8000", path}, &out, &errOut, vars); code != 0 {
		t.Fatalf("export = %d; stderr: %s", code, errOut.String())
	}
	if got := strings.Count(out.String(), "wrote "); got != 2 {
		t.Errorf("export output = %q, want 2 files", out.String())
	}

	out.Reset()
	if code := run(ctx, []string{"sessions"}, &out, &errOut, vars); code != 0 {
		t.Fatalf("sessions = %d; stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), path) || !strings.Contains(out.String(), "2 segments  0 markers") {
		t.Errorf("sessions output = %q", out.String())
	}
}

func TestRun_SessionsEmpty(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	vars := env(map[string]string{envDB: filepath.Join(t.TempDir(), "a.db")})
	if code := run(context.Background(), []string{"sessions"}, &out, &errOut, vars); code != 0 {
		t.Fatalf("sessions = %d", code)
	}
	if strings.TrimSpace(out.String()) != "no sessions" {
		t.Errorf("output = %q", out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	def := loadConfig(env(nil))
	if def.LogLevel != defaultLogLevel || def.DBPath == "" {
		t.Errorf("defaults = %+v", def)
	}

	cfg := loadConfig(env(map[string]string{envDB: "/tmp/x.db", envLogLevel: "debug"}))
	if cfg.DBPath != "/tmp/x.db" || cfg.LogLevel != "debug" {
		t.Errorf("overrides = %+v", cfg)
	}
}
