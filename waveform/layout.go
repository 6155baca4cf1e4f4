// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"math"

	"github.com/ik5/audwave/utils"
)

// Spike geometry bounds, in pixels.
const (
	MinSpikeWidth   = 1.0
	MaxSpikeWidth   = 24.0
	MinSpikePadding = 0.0
	MaxSpikePadding = 12.0
	MinSpikeRadius  = 0.0
	MaxSpikeRadius  = 12.0

	// MinSpikeHeight is the height of a silent spike.
	MinSpikeHeight = 1.0
)

// Style describes how spikes are laid out on a canvas.
type Style struct {
	SpikeWidth   float64
	SpikePadding float64
	SpikeRadius  float64
	Alignment    Alignment
	Type         AmplitudeType
}

// DefaultStyle matches the bar graph defaults.
func DefaultStyle() Style {
	return Style{
		SpikeWidth:   4,
		SpikePadding: 1,
		SpikeRadius:  2,
		Alignment:    Center,
		Type:         AVG,
	}
}

// Clamped returns a copy with every dimension forced into its bounds.
func (s Style) Clamped() Style {
	s.SpikeWidth = utils.Clamp(s.SpikeWidth, MinSpikeWidth, MaxSpikeWidth)
	s.SpikePadding = utils.Clamp(s.SpikePadding, MinSpikePadding, MaxSpikePadding)
	s.SpikeRadius = utils.Clamp(s.SpikeRadius, MinSpikeRadius, MaxSpikeRadius)

	return s
}

// Pitch is the horizontal distance between the left edges of two spikes.
func (s Style) Pitch() float64 {
	c := s.Clamped()
	return c.SpikeWidth + c.SpikePadding
}

// SpikeCount is how many spikes fit in canvasWidth.
func (s Style) SpikeCount(canvasWidth float64) int {
	if canvasWidth <= 0 {
		return 0
	}

	return int(math.Floor(utils.SafeDiv(canvasWidth, s.Pitch())))
}

// Bar is one rounded rectangle to draw.
type Bar struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
}

// Layout reduces samples to as many spikes as fit in the canvas and
// positions them according to the style.
func Layout(samples []int, style Style, canvasWidth, canvasHeight float64) []Bar {
	s := style.Clamped()
	count := s.SpikeCount(canvasWidth)
	maxHeight := math.Max(canvasHeight, MinSpikeHeight)

	heights := Reduce(samples, count, s.Type, MinSpikeHeight, maxHeight)

	bars := make([]Bar, len(heights))
	for i, h := range heights {
		bars[i] = Bar{
			X:      float64(i) * s.Pitch(),
			Y:      s.Alignment.OffsetY(canvasHeight, h),
			Width:  s.SpikeWidth,
			Height: h,
			Radius: s.SpikeRadius,
		}
	}

	return bars
}

// ProgressX is the x position of the progress cursor; progress is clamped
// to [0,1].
func ProgressX(progress, canvasWidth float64) float64 {
	return utils.Clamp(progress, 0, 1) * canvasWidth
}

// ProgressFromX converts a touch on the bar graph into a progress fraction.
// Touches outside the canvas are clamped to its edges.
func ProgressFromX(x, canvasWidth float64) float64 {
	if canvasWidth <= 0 {
		return 0
	}

	return utils.SafeDiv(utils.Clamp(x, 0, canvasWidth), canvasWidth)
}
