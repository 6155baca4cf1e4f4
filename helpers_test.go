// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audwave/formats/wav"
)

// writeFixture writes a mono 16-bit WAV of frames copies of v.
func writeFixture(t *testing.T, name string, rate, frames int, v int16) string {
	t.Helper()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = v
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.WriteWAV16(f, rate, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}
