// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/faiface/beep"

	"github.com/ik5/audwave/audio"
)

// stream adapts an audio.Source to a stereo beep.Streamer. Mono input is
// sent to both sides; sources with more than two channels are mixed down
// before they get here.
type stream struct {
	src      audio.Source
	channels int
	rate     int
	buf      []float32
	frames   atomic.Int64
	done     bool
	err      error
}

var _ beep.Streamer = (*stream)(nil)

// newStream prepares src for an output running at rate.
func newStream(src audio.Source, rate int) *stream {
	if src.Channels() > 2 {
		src = audio.NewMonoMixer(src)
	}
	if rate > 0 && src.SampleRate() != rate {
		src = audio.NewResampler(src, rate)
	}

	return &stream{
		src:      src,
		channels: src.Channels(),
		rate:     src.SampleRate(),
	}
}

func (s *stream) Stream(samples [][2]float64) (int, bool) {
	if s.done || s.channels < 1 {
		return 0, false
	}

	want := len(samples) * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	buf := s.buf[:want]

	got := 0
	for got < want {
		n, err := s.src.ReadSamples(buf[got:])
		got += n

		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}

			break
		}
		if n == 0 {
			break
		}
	}

	frames := got / s.channels
	for i := range frames {
		left := float64(buf[i*s.channels])
		right := left
		if s.channels == 2 {
			right = float64(buf[i*s.channels+1])
		}
		samples[i] = [2]float64{left, right}
	}
	s.frames.Add(int64(frames))

	if frames == 0 && s.done {
		return 0, false
	}

	return frames, true
}

func (s *stream) Err() error { return s.err }

// positionMs is the playback position derived from the frames handed out.
func (s *stream) positionMs() int64 {
	if s.rate <= 0 {
		return 0
	}

	return s.frames.Load() * 1000 / int64(s.rate)
}

func (s *stream) Close() error { return s.src.Close() }
