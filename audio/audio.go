// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame.
	Channels() int
	// ReadSamples fills dst with interleaved samples in [-1,1] and returns
	// the number of values written, not frames. io.EOF ends the stream and
	// may come with a final n > 0.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	Close() error
}

// Lengther is implemented by sources that know their length up front.
type Lengther interface {
	// Frames is the total frame count, or a negative value when unknown.
	Frames() int64
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) (Source, error)

func (f DecoderFunc) Decode(r io.Reader) (Source, error) { return f(r) }

// Registry maps format names and file extensions to decoders.
type Registry struct {
	codecs map[string]Decoder
	exts   map[string]string

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		exts:   make(map[string]string),
	}
}

// Register binds format to d. Extensions are matched case insensitively,
// with or without the leading dot. Registering a format again replaces it.
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, ext := range extensions {
		r.exts[normalizeExt(ext)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Lookup picks the decoder for path by its extension.
func (r *Registry) Lookup(path string) (string, Decoder, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.exts[ext]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}

	d, ok := r.codecs[format]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return format, d, nil
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		out = append(out, name)
	}
	slices.Sort(out)

	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
