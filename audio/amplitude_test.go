// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audwave/internal/audiotest"
)

func TestReadAmplitudes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        Source
		perSecond  int
		wantValues []int
		wantLen    int
		wantMs     int64
	}{
		{
			name:       "two windows per second",
			src:        audiotest.FromSamples(4, 1, []float32{1, -1, 0, 0.5}),
			perSecond:  2,
			wantValues: []int{32767, 8191},
			wantLen:    2,
			wantMs:     1000,
		},
		{
			name:       "partial last window",
			src:        audiotest.FromSamples(4, 1, []float32{1, -1, 0, 0.5, -1}),
			perSecond:  2,
			wantValues: []int{32767, 8191, 32767},
			wantLen:    3,
			wantMs:     1250,
		},
		{
			name:      "stereo constant",
			src:       audiotest.Constant(8000, 2, 8000, 0.5),
			perSecond: 100,
			wantLen:   100,
			wantMs:    1000,
		},
		{
			name:      "window shorter than a frame",
			src:       audiotest.Constant(10, 1, 5, -0.25),
			perSecond: 100,
			wantLen:   5,
			wantMs:    500,
		},
		{
			name:      "empty source",
			src:       audiotest.Silence(8000, 1, 0),
			perSecond: 100,
			wantLen:   0,
			wantMs:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadAmplitudes(tt.src, tt.perSecond)
			if err != nil {
				t.Fatalf("ReadAmplitudes() error = %v", err)
			}
			if len(got.Values) != tt.wantLen {
				t.Fatalf("len(Values) = %d, want %d", len(got.Values), tt.wantLen)
			}
			if tt.wantValues != nil && !slices.Equal(got.Values, tt.wantValues) {
				t.Errorf("Values = %v, want %v", got.Values, tt.wantValues)
			}
			if got.DurationMs != tt.wantMs {
				t.Errorf("DurationMs = %d, want %d", got.DurationMs, tt.wantMs)
			}
		})
	}
}

func TestReadAmplitudes_ConstantLevel(t *testing.T) {
	t.Parallel()

	got, err := ReadAmplitudes(audiotest.Constant(8000, 2, 800, -0.5), 100)
	if err != nil {
		t.Fatalf("ReadAmplitudes() error = %v", err)
	}
	for i, v := range got.Values {
		if v != 16383 {
			t.Fatalf("Values[%d] = %d, want 16383", i, v)
		}
	}
	if got.Frames != 800 || got.SampleRate != 8000 {
		t.Errorf("Frames = %d, SampleRate = %d", got.Frames, got.SampleRate)
	}
}

func TestReadAmplitudes_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ReadAmplitudes(audiotest.Silence(0, 1, 10), 100); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("zero rate error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := ReadAmplitudes(audiotest.Silence(8000, 1, 10), 0); !errors.Is(err, ErrInvalidWindowRate) {
		t.Errorf("zero perSecond error = %v, want ErrInvalidWindowRate", err)
	}

	src := audiotest.Constant(8000, 1, 8000, 0.5).FailAfter(100)
	if _, err := ReadAmplitudes(src, 100); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("failing source error = %v, want ErrInjected", err)
	}
}

// stutterSource returns an empty read before every real one.
type stutterSource struct {
	Source
	calls int
}

func (s *stutterSource) ReadSamples(dst []float32) (int, error) {
	s.calls++
	if s.calls%2 == 1 {
		return 0, nil
	}

	return s.Source.ReadSamples(dst[:min(len(dst), 10)])
}

// stuckSource never produces data and never ends.
type stuckSource struct{ Source }

func (stuckSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestReadAmplitudes_EmptyReads(t *testing.T) {
	t.Parallel()

	src := &stutterSource{Source: audiotest.Constant(8000, 1, 8000, 0.5)}
	got, err := ReadAmplitudes(src, 100)
	if err != nil {
		t.Fatalf("ReadAmplitudes() error = %v", err)
	}
	if got.Frames != 8000 || got.DurationMs != 1000 || len(got.Values) != 100 {
		t.Errorf("Frames = %d, DurationMs = %d, len = %d, want 8000, 1000, 100",
			got.Frames, got.DurationMs, len(got.Values))
	}

	stuck := stuckSource{audiotest.Silence(8000, 1, 10)}
	if _, err := ReadAmplitudes(stuck, 100); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("stuck source error = %v, want io.ErrNoProgress", err)
	}
}
