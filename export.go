// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/segment"
)

const exportBufferSize = 8192

var ErrNoSegments = errors.New("no segments to export")

// ExportSegments cuts the track at path into one mono 16-bit WAV per
// segment, written to dir at the given rate. It returns the written paths in
// segment order.
func ExportSegments(ctx context.Context, path string, segs []segment.Segment, dir string, rate int, opts ...Option) ([]string, error) {
	if len(segs) == 0 {
		return nil, ErrNoSegments
	}

	o := buildOptions(opts)

	src, _, err := open(path, o)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pcm, rate, err := ResampleToMono16(src, rate, exportBufferSize)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written := make([]string, 0, len(segs))

	for i, s := range segs {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		lo, hi := sampleRange(s, rate, len(pcm))
		name := filepath.Join(dir, fmt.Sprintf("%s_%02d_%d-%d.wav", base, i+1, s.Start, s.End))

		if err := writeSegment(name, rate, pcm[lo:hi]); err != nil {
			return written, err
		}

		o.logger.Debug("exported segment",
			zap.String("file", name),
			zap.Stringer("segment", s),
			zap.Int("samples", hi-lo),
		)
		written = append(written, name)
	}

	return written, nil
}

// sampleRange converts a segment to sample indices clamped to [0, n].
func sampleRange(s segment.Segment, rate, n int) (int, int) {
	lo := int(s.Start * int64(rate) / 1000)
	hi := int(s.End * int64(rate) / 1000)

	lo = min(max(lo, 0), n)
	hi = min(max(hi, lo), n)

	return lo, hi
}

func writeSegment(name string, rate int, samples []int16) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if err := wav.Encode(f, rate, 1, samples); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}

	return f.Close()
}
