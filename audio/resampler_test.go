// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/audwave/internal/audiotest"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Silence(44100, 2, 1000), 8000)
	if r.SampleRate() != 8000 || r.Channels() != 2 {
		t.Errorf("metadata = %d Hz, %d ch, want 8000 Hz, 2 ch", r.SampleRate(), r.Channels())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	in := []float32{0, 0.25, -0.5, 0.75, 1, -1, 0.125}
	got, err := drain(NewResampler(audiotest.FromSamples(8000, 1, in), 8000), 3)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	if !slices.Equal(got, in) {
		t.Errorf("drain() = %v, want %v", got, in)
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"downsample", 44100, 8000, 44100, 8000},
		{"upsample", 8000, 16000, 100, 199},
		{"single frame", 8000, 16000, 1, 1},
		{"empty", 8000, 16000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.Tone(tt.srcRate, 1, tt.frames, 440), tt.dstRate)
			if got := r.Frames(); got != int64(tt.want) {
				t.Errorf("Frames() = %d, want %d", got, tt.want)
			}

			out, err := drain(r, 4096)
			if err != nil {
				t.Fatalf("drain() error = %v", err)
			}
			if diff := len(out) - tt.want; diff < -1 || diff > 1 {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestResampler_ConstantSurvives(t *testing.T) {
	t.Parallel()

	src := audiotest.New(44100, 2, 4410, func(_, ch int) float32 {
		return []float32{0.25, -0.25}[ch]
	})

	out, err := drain(NewResampler(src, 22050), 512)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	if len(out)%2 != 0 {
		t.Fatalf("len = %d, not a whole number of stereo frames", len(out))
	}

	for i := 0; i < len(out); i += 2 {
		if math.Abs(float64(out[i]-0.25)) > 1e-6 || math.Abs(float64(out[i+1]+0.25)) > 1e-6 {
			t.Fatalf("frame %d = %v, %v, want 0.25, -0.25", i/2, out[i], out[i+1])
		}
	}
}

func TestResampler_ChunkingDoesNotChangeOutput(t *testing.T) {
	t.Parallel()

	whole, err := drain(NewResampler(audiotest.Tone(44100, 1, 2000, 330), 16000), 4096)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}
	small, err := drain(NewResampler(audiotest.Tone(44100, 1, 2000, 330), 16000), 1)
	if err != nil {
		t.Fatalf("drain() error = %v", err)
	}

	if !slices.Equal(whole, small) {
		t.Errorf("chunked output differs: %d vs %d samples", len(whole), len(small))
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Silence(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.Constant(8000, 1, 100, 0.5).FailAfter(10)
	out, err := drain(NewResampler(src, 16000), 64)

	if !errors.Is(err, audiotest.ErrInjected) {
		t.Fatalf("drain() error = %v, want ErrInjected", err)
	}
	if len(out) == 0 {
		t.Error("expected frames read before the failure")
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.Silence(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if src.Closed() != 1 {
		t.Errorf("source closed %d times, want 1", src.Closed())
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	for b.Loop() {
		r := NewResampler(audiotest.Tone(44100, 2, 44100, 440), 8000)
		_, _ = drainInto(r, buf)
	}
}
