// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   io.Reader
	}{
		{"text", bytes.NewReader([]byte("This is not AIFF data"))},
		{"empty", bytes.NewReader(nil)},
		{"riff header", bytes.NewReader([]byte("RIFF\x24\x00\x00\x00WAVEfmt "))},
		{"non seekable", io.MultiReader(bytes.NewReader([]byte("FORM")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(tt.in); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("unplugged") }

func TestDecoder_ReadFailure(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(brokenReader{})
	if err == nil || errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want read failure", err)
	}
}
