// SPDX-License-Identifier: EPL-2.0

// Package timeline maps between pixel offsets on a fixed-width drawing
// surface and millisecond timestamps within a bounded duration.
package timeline

import (
	"fmt"

	"github.com/ik5/audwave/utils"
)

// Mapper converts between canvas pixels and track milliseconds. A zero
// width or zero duration maps everything to 0.
type Mapper struct {
	WidthPx    float64
	DurationMs int64
}

// NewMapper creates a mapper for a canvas of width pixels showing a track
// of durationMs.
func NewMapper(width float64, durationMs int64) Mapper {
	return Mapper{WidthPx: width, DurationMs: durationMs}
}

// ToPx returns the x offset of ms.
func (m Mapper) ToPx(ms int64) float64 {
	return utils.SafeDiv(m.WidthPx, float64(m.DurationMs)) * float64(ms)
}

// ToMs returns the timestamp under px, truncated toward zero.
func (m Mapper) ToMs(px float64) int64 {
	return int64(utils.SafeDiv(float64(m.DurationMs), m.WidthPx) * px)
}

// ClampPx coerces px onto the canvas.
func (m Mapper) ClampPx(px float64) float64 {
	return utils.Clamp(px, 0, max(m.WidthPx, 0))
}

// Fraction is the position of ms as a fraction of the duration.
func (m Mapper) Fraction(ms int64) float64 {
	return utils.SafeDivInt64(ms, m.DurationMs)
}

// FormatMmSs renders ms as "m:ss", minutes wrapping at an hour.
func FormatMmSs(ms int64) string {
	seconds := (ms / 1000) % 60
	minutes := (ms / (1000 * 60)) % 60

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
