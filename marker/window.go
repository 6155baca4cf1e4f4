// SPDX-License-Identifier: EPL-2.0

package marker

import (
	"fmt"

	"github.com/ik5/audwave/utils"
)

// DefaultWindowSize is the zoomed fraction of the track.
const DefaultWindowSize = 0.2

// Window is the slice of the track shown in the zoomed view, as fractions
// of the track: [Offset, Offset+Size].
type Window struct {
	Size   float64
	Offset float64
}

// NewWindow creates a window of the given size at offset 0.
func NewWindow(size float64) (Window, error) {
	if size < 0 || size > 1 {
		return Window{}, fmt.Errorf("%w: %v", ErrInvalidWindowSize, size)
	}

	return Window{Size: size}, nil
}

// MaxOffset is the largest offset that keeps the window inside the track.
func (w Window) MaxOffset() float64 { return 1 - w.Size }

// SetOffset moves the window, clamped to [0, MaxOffset].
func (w *Window) SetOffset(offset float64) {
	w.Offset = utils.Clamp(offset, 0, w.MaxOffset())
}

// Scrub positions the window from a touch at x on the overview canvas. The
// window starts at the touch, and touches past the last full window pin it
// to the end of the track.
func (w *Window) Scrub(x, canvasWidth float64) {
	if canvasWidth <= 0 {
		return
	}

	x = utils.Clamp(x, 0, canvasWidth)
	maxX := canvasWidth * w.MaxOffset()

	if x >= maxX {
		w.Offset = utils.SafeDiv(maxX, canvasWidth)
		return
	}

	w.Offset = utils.SafeDiv(x, canvasWidth)
}

// Contains reports whether pos falls inside the window.
func (w Window) Contains(pos float64) bool {
	return pos >= w.Offset && pos <= w.Offset+w.Size
}

// Slice returns the amplitudes covered by the window.
func (w Window) Slice(amplitudes []int) []int {
	n := len(amplitudes)
	start := utils.Clamp(int(float64(n)*w.Offset), 0, n)
	end := utils.Clamp(int(float64(n)*(w.Offset+w.Size)), start, n)

	return amplitudes[start:end]
}

// Project maps the markers inside the window onto [0,1] of the zoomed view.
func (w Window) Project(positions []float64) []float64 {
	out := make([]float64, 0, len(positions))
	for _, p := range positions {
		if w.Contains(p) {
			out = append(out, w.Local(p))
		}
	}

	return out
}

// Local maps a track fraction to a fraction of the zoomed view.
func (w Window) Local(pos float64) float64 {
	return utils.SafeDiv(pos-w.Offset, w.Size)
}

// Global maps a fraction of the zoomed view back to a track fraction.
func (w Window) Global(local float64) float64 {
	return local*w.Size + w.Offset
}
