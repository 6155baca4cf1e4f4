// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var (
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
	ErrMissingFormat       = errors.New("PCM format has no channels")
)

// Reader is the part of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams a Reader as normalized float32 samples.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	unsigned bool
	frames   int64
	scale    float32
	buf      *goaudio.IntBuffer
	eof      bool
}

// Option configures a Source.
type Option func(*Source)

// Unsigned marks 8-bit samples as offset binary, as WAV stores them.
func Unsigned() Option {
	return func(s *Source) { s.unsigned = true }
}

// Frames records the stream length when the container declares it.
func Frames(n int64) Option {
	return func(s *Source) { s.frames = n }
}

// New wraps dec. bitDepth must be one of 8, 16, 24 or 32.
func New(dec Reader, format *goaudio.Format, bitDepth int, opts ...Option) (*Source, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if format == nil || format.NumChannels < 1 {
		return nil, ErrMissingFormat
	}

	s := &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		frames:   -1,
		scale:    1 / float32(int64(1)<<(bitDepth-1)),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Frames() int64   { return s.frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}

	return 4096
}

func (s *Source) normalize(v int) float32 {
	if s.unsigned && s.bitDepth == 8 {
		v -= 128
	}

	return float32(v) * s.scale
}

// ReadSamples fills dst with whole frames. A trailing partial frame in a
// truncated stream is dropped.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	ch := s.format.NumChannels
	want := len(dst) / ch * ch
	if want == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if s.buf == nil || cap(s.buf.Data) < want {
		s.buf = &goaudio.IntBuffer{Data: make([]int, want), Format: s.format}
	}

	n := 0
	for n < want && !s.eof {
		s.buf.Data = s.buf.Data[:want-n]

		got, err := s.dec.PCMBuffer(s.buf)
		got = max(got, 0)
		for i, v := range s.buf.Data[:got] {
			dst[n+i] = s.normalize(v)
		}
		n += got

		if err != nil && !errors.Is(err, io.EOF) {
			return n / ch * ch, fmt.Errorf("read pcm: %w", err)
		}
		if got == 0 || errors.Is(err, io.EOF) {
			s.eof = true
		}
	}

	n = n / ch * ch
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}
