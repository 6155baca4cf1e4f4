// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic sources for tests. Sources satisfy
// audio.Source without importing it.
package audiotest

import (
	"errors"
	"io"
	"math"
	"sync/atomic"
)

// ErrInjected is returned by sources built with FailAfter.
var ErrInjected = errors.New("audiotest: injected read failure")

// Source generates interleaved samples from a function of frame and channel.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	gen        func(frame, channel int) float32

	failAt int
	closed atomic.Int32
}

// New creates a source of frames frames. gen returns the sample for a frame
// and channel.
func New(sampleRate, channels, frames int, gen func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		gen:        gen,
		failAt:     -1,
	}
}

func Silence(sampleRate, channels, frames int) *Source {
	return Constant(sampleRate, channels, frames, 0)
}

func Constant(sampleRate, channels, frames int, v float32) *Source {
	return New(sampleRate, channels, frames, func(int, int) float32 { return v })
}

// Tone is a full scale sine at freq Hz on every channel.
func Tone(sampleRate, channels, frames int, freq float64) *Source {
	return New(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

// FromSamples plays back interleaved samples as given.
func FromSamples(sampleRate, channels int, samples []float32) *Source {
	return New(sampleRate, channels, len(samples)/channels, func(frame, ch int) float32 {
		return samples[frame*channels+ch]
	})
}

// FailAfter makes reads fail with ErrInjected once frame is reached.
func (s *Source) FailAfter(frame int) *Source {
	s.failAt = frame
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Frames() int64   { return int64(s.frames) }

func (s *Source) Close() error {
	s.closed.Add(1)
	return nil
}

// Closed reports how many times Close was called.
func (s *Source) Closed() int { return int(s.closed.Load()) }

// Rewind restarts generation from the first frame.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, ErrInjected
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.failAt >= 0 {
		n = min(n, s.failAt-s.pos)
	}

	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.gen(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
