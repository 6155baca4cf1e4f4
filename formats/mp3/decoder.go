// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audwave/audio"
)

const (
	channels   = 2
	frameBytes = channels * 2
)

// pcmReader is the part of gomp3.Decoder used by source.
type pcmReader interface {
	io.Reader
	SampleRate() int
	Length() int64
}

type source struct {
	dec pcmReader
	buf []byte
	eof bool
}

func newSource(dec pcmReader) *source {
	return &source{dec: dec, buf: make([]byte, 8192)}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

// Frames is known only when the input was seekable.
func (s *source) Frames() int64 {
	if l := s.dec.Length(); l >= 0 {
		return l / frameBytes
	}

	return -1
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) / channels * frameBytes
	if need == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("mp3: %w", err)
	}

	samples := n / frameBytes * channels
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	if samples == 0 && s.eof {
		return 0, io.EOF
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return newSource(dec), nil
}
