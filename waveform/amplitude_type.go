// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"strings"
)

// AmplitudeType selects how a chunk of samples collapses into one spike.
type AmplitudeType int

const (
	AVG AmplitudeType = iota
	MAX
	MIN
)

func (t AmplitudeType) String() string {
	switch t {
	case AVG:
		return "avg"
	case MAX:
		return "max"
	case MIN:
		return "min"
	default:
		return fmt.Sprintf("AmplitudeType(%d)", int(t))
	}
}

// ParseAmplitudeType accepts "avg", "max" or "min" in any case.
func ParseAmplitudeType(s string) (AmplitudeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avg", "average", "mean":
		return AVG, nil
	case "max":
		return MAX, nil
	case "min":
		return MIN, nil
	}

	return AVG, fmt.Errorf("%w: %q", ErrUnknownAmplitudeType, s)
}

// Alignment is the vertical anchor of spikes inside the canvas.
type Alignment int

const (
	Center Alignment = iota
	Top
	Bottom
)

func (a Alignment) String() string {
	switch a {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Center:
		return "center"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment accepts "top", "bottom" or "center".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre", "":
		return Center, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	}

	return Center, fmt.Errorf("%w: %q", ErrUnknownAlignment, s)
}

// OffsetY returns the top edge of a spike of the given height.
func (a Alignment) OffsetY(canvasHeight, spikeHeight float64) float64 {
	switch a {
	case Top:
		return 0
	case Bottom:
		return canvasHeight - spikeHeight
	default:
		return canvasHeight/2 - spikeHeight/2
	}
}
