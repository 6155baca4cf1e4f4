// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audwave/audio"
)

// oggReader is the part of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns values, not frames; always a multiple of Channels.
	Read([]float32) (int, error)
	// Length is in frames; 0 means unknown.
	Length() int64
}

type source struct {
	dec oggReader
	eof bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Frames() int64 {
	if l := s.dec.Length(); l > 0 {
		return l
	}

	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	want := len(dst) / ch * ch
	if want == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	n := 0
	for n < want {
		got, err := s.dec.Read(dst[n:want])
		n += got

		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return n, fmt.Errorf("vorbis: %w", err)
		}
		if got == 0 {
			break
		}
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	return &source{dec: dec}, nil
}
