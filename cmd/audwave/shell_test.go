// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestShell_Exec(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	sh := newShell("test", &out)

	var got []string
	sh.handle("echo", "<words>", "repeat words", func(_ context.Context, args []string) error {
		got = args
		return nil
	})

	ctx := context.Background()
	if err := sh.exec(ctx, "  echo  a b "); err != nil || strings.Join(got, ",") != "a,b" {
		t.Errorf("echo = %v, %v", got, err)
	}
	if err := sh.exec(ctx, "   "); err != nil {
		t.Errorf("blank line error = %v", err)
	}
	if err := sh.exec(ctx, "dance"); err == nil {
		t.Error("unknown command error = nil")
	}
	if err := sh.exec(ctx, "QUIT"); !errors.Is(err, errQuit) {
		t.Errorf("quit error = %v, want errQuit", err)
	}

	if err := sh.exec(ctx, "help"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"help", "exit", "echo <words>", "repeat words"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, out.String())
		}
	}
}

func TestFloatArgs(t *testing.T) {
	t.Parallel()

	if v, err := floatArgs([]string{"1.5", "-2"}, 2); err != nil || v[0] != 1.5 || v[1] != -2 {
		t.Errorf("floatArgs() = %v, %v", v, err)
	}
	if _, err := floatArgs([]string{"1"}, 2); err == nil {
		t.Error("too few arguments error = nil")
	}
	if _, err := floatArgs([]string{"x"}, 1); err == nil {
		t.Error("non-numeric error = nil")
	}
}
