// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/utils"
)

// lowPassAlpha is the one-pole coefficient applied before downsampling.
const lowPassAlpha = 0.5

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel count is preserved. Output frame k sits at source
// frame k*srcRate/dstRate, so the first output equals the first input.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64
	channels int

	// win holds frames t-1, t, t+1, t+2 around the interpolation point,
	// which lies pos frames after win[1]. ahead counts how many of win[2]
	// and win[3] came from the source rather than edge padding.
	win   [4][]float32
	ahead int
	pos   float64

	in      []float32
	lp      []float32
	filter  bool
	started bool
	eof     bool
	err     error
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	step := utils.SafeDivInt(src.SampleRate(), dstRate)
	if step <= 0 {
		step = 1
	}

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, channels),
		lp:       make([]float32, channels),
		filter:   step > 1,
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Frames estimates the output length from the source length.
func (r *Resampler) Frames() int64 {
	l, ok := r.src.(Lengther)
	if !ok || l.Frames() < 0 {
		return -1
	}
	if l.Frames() == 0 {
		return 0
	}

	return int64(float64(l.Frames()-1)/r.step) + 1
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}

	return nil
}

// pull reads one source frame into dst.
func (r *Resampler) pull(dst []float32) bool {
	if r.eof {
		return false
	}

	n, err := r.src.ReadSamples(r.in)
	if err != nil {
		r.eof = true
		if !errors.Is(err, io.EOF) {
			r.err = fmt.Errorf("resampler: %w", err)
		}
	}
	if n < r.channels {
		r.eof = true
		return false
	}

	if r.filter {
		if !r.started {
			copy(r.lp, r.in)
		}
		for c, v := range r.in {
			r.lp[c] = lowPassAlpha*v + (1-lowPassAlpha)*r.lp[c]
		}
		copy(dst, r.lp)
	} else {
		copy(dst, r.in)
	}
	r.started = true

	return true
}

func (r *Resampler) prime() bool {
	if !r.pull(r.win[1]) {
		return false
	}
	copy(r.win[0], r.win[1])

	r.ahead = 0
	for _, slot := range r.win[2:] {
		if !r.pull(slot) {
			break
		}
		r.ahead++
	}
	r.pad()

	return true
}

// pad repeats the last real frame into the slots past the end of input.
func (r *Resampler) pad() {
	last := 1 + r.ahead
	for i := last + 1; i < len(r.win); i++ {
		copy(r.win[i], r.win[last])
	}
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() bool {
	if r.ahead == 0 {
		return false
	}

	first := r.win[0]
	copy(r.win[:], r.win[1:])
	r.win[3] = first
	r.ahead--

	if r.ahead == 1 && r.pull(r.win[3]) {
		r.ahead++
	}
	r.pad()

	return true
}

func (r *Resampler) end(written int) (int, error) {
	if r.err != nil {
		return written * r.channels, r.err
	}

	return written * r.channels, io.EOF
}

// ReadSamples fills dst at the destination rate. len(dst) must be a
// multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started && (r.eof || !r.prime()) {
		return r.end(0)
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			if !r.advance() {
				return r.end(written)
			}
			r.pos--
		}
		if r.ahead == 0 && r.pos > 0 {
			return r.end(written)
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
