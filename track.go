// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/aiff"
	"github.com/ik5/audwave/formats/mp3"
	"github.com/ik5/audwave/formats/vorbis"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/utils"
)

// Track is a decoded audio file reduced to what a waveform needs.
type Track struct {
	Path       string
	Format     string
	Amplitudes []int
	DurationMs int64
	SampleRate int
	Channels   int
}

// Empty reports whether the track has nothing to draw.
func (t Track) Empty() bool { return len(t.Amplitudes) == 0 }

// Levels rescales the 16-bit amplitudes onto [0, ceiling], the range a
// waveform reducer clamps spike heights into.
func (t Track) Levels(ceiling int) []int {
	out := make([]int, len(t.Amplitudes))
	for i, v := range t.Amplitudes {
		out[i] = utils.Clamp(v, 0, math.MaxInt16) * ceiling / math.MaxInt16
	}

	return out
}

type options struct {
	logger    *zap.Logger
	registry  *audio.Registry
	perSecond int
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithAmplitudesPerSecond sets the extraction resolution.
func WithAmplitudesPerSecond(n int) Option {
	return func(o *options) { o.perSecond = n }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    zap.NewNop(),
		perSecond: audio.DefaultAmplitudesPerSecond,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	return o
}

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, ".wav", ".wave")
	r.Register("aiff", aiff.Decoder{}, ".aiff", ".aif")
	r.Register("mp3", mp3.Decoder{}, ".mp3")
	r.Register("ogg", vorbis.Decoder{}, ".ogg", ".oga")

	return r
}

// fileSource closes the underlying file along with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Frames() int64 {
	if l, ok := s.Source.(audio.Lengther); ok {
		return l.Frames()
	}

	return -1
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// Open decodes path with the decoder registered for its extension. The
// returned name is the registry format.
func Open(path string, opts ...Option) (audio.Source, string, error) {
	o := buildOptions(opts)
	return open(path, o)
}

func open(path string, o options) (audio.Source, string, error) {
	format, dec, err := o.registry.Lookup(path)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, format, nil
}

// Decode reads the whole file at path into a Track.
func Decode(path string, opts ...Option) (Track, error) {
	o := buildOptions(opts)

	src, format, err := open(path, o)
	if err != nil {
		return Track{Path: path}, err
	}
	defer src.Close()

	amps, err := audio.ReadAmplitudes(src, o.perSecond)
	if err != nil {
		return Track{Path: path}, fmt.Errorf("decode %s: %w", path, err)
	}

	o.logger.Debug("decoded track",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("amplitudes", len(amps.Values)),
		zap.Int64("duration_ms", amps.DurationMs),
	)

	return Track{
		Path:       path,
		Format:     format,
		Amplitudes: amps.Values,
		DurationMs: amps.DurationMs,
		SampleRate: amps.SampleRate,
		Channels:   src.Channels(),
	}, nil
}

// Load is Decode for callers that render whatever they get: on failure it
// logs the error and returns an empty track with zero duration.
func Load(path string, opts ...Option) Track {
	o := buildOptions(opts)

	t, err := Decode(path, opts...)
	if err != nil {
		o.logger.Error("load track", zap.String("path", path), zap.Error(err))
		return Track{Path: path, Amplitudes: []int{}}
	}

	return t
}
