// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"slices"

	"github.com/ik5/audwave/utils"
)

const (
	DefaultLivePoints       = 200
	DefaultLiveMaxAmplitude = 12000.0

	liveInset      = 4.0
	liveLeftMargin = 10.0
)

// Point is a vertex of the live polyline.
type Point struct {
	X, Y float64
}

// Live keeps the most recent amplitudes of a running capture, such as a
// recorder meter, and maps them onto a polyline.
type Live struct {
	values       []float64
	maxAmplitude float64
}

// NewLive creates a graph of n points, all starting at 1. maxAmplitude is the
// initial top of the scale; louder input raises it.
func NewLive(n int, maxAmplitude float64) *Live {
	if n <= 0 {
		n = DefaultLivePoints
	}
	if maxAmplitude <= 0 {
		maxAmplitude = DefaultLiveMaxAmplitude
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = 1
	}

	return &Live{values: values, maxAmplitude: maxAmplitude}
}

// Push appends the current amplitude, dropping the oldest value.
func (l *Live) Push(amp float64) {
	if amp > l.maxAmplitude {
		l.maxAmplitude = amp
	}

	copy(l.values, l.values[1:])
	l.values[len(l.values)-1] = amp
}

// MaxAmplitude is the current top of the scale.
func (l *Live) MaxAmplitude() float64 { return l.maxAmplitude }

// Values returns a copy of the buffered amplitudes, oldest first.
func (l *Live) Values() []float64 { return slices.Clone(l.values) }

// Points maps the buffer onto a width x height canvas. Values are scaled so
// that the smallest buffered value sits at the bottom and MaxAmplitude at
// the top; a flat scale leaves the raw values untouched.
func (l *Live) Points(width, height float64) []Point {
	graphHeight := height - liveInset
	graphWidth := width - liveInset
	step := utils.SafeDiv(graphWidth, float64(len(l.values)))

	ys := l.scaled(height)

	points := make([]Point, len(ys))
	for i, y := range ys {
		points[i] = Point{
			X: liveLeftMargin + float64(i)*step,
			Y: graphHeight - y,
		}
	}

	return points
}

func (l *Live) scaled(height float64) []float64 {
	lo := slices.Min(l.values)
	if l.maxAmplitude == lo {
		return slices.Clone(l.values)
	}

	slope := height / (l.maxAmplitude - lo)
	intercept := height - slope*l.maxAmplitude

	out := make([]float64, len(l.values))
	for i, v := range l.values {
		out[i] = slope*v + intercept + 1
	}

	return out
}
