// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audwave/formats/wav"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// writeWAV writes one second of 8 kHz audio: loud first half, quiet second.
func writeWAV(t *testing.T, dir, name string) string {
	t.Helper()

	samples := make([]int16, 8000)
	for i := range samples {
		if i < 4000 {
			samples[i] = 30000
		} else {
			samples[i] = 1000
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.WriteWAV16(f, 8000, samples); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}
