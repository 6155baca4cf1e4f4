// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"github.com/ik5/audwave/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reduce turns raw amplitude samples into exactly targetCount spike heights
// in [minHeight, maxHeight].
//
// When there are fewer samples than spikes every sample is repeated
// ceil(targetCount/len(samples)) times and the result is shrunk back down.
// Otherwise samples are chunked, each chunk collapsed with typ and clamped,
// and the whole sequence is linearly rescaled so that its minimum lands on
// minHeight and its maximum on maxHeight. A flat input rescales to minHeight.
//
// Empty input or targetCount == 0 yields targetCount copies of minHeight.
func Reduce(samples []int, targetCount int, typ AmplitudeType, minHeight, maxHeight float64) []float64 {
	if targetCount <= 0 {
		return []float64{}
	}

	if len(samples) == 0 {
		return flat(targetCount, minHeight)
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}

	reduce := chunkReducer(typ, minHeight, maxHeight)

	var spikes []float64
	if targetCount > len(values) {
		spikes = fillToSize(values, targetCount, reduce)
	} else {
		spikes = chunkToSize(values, targetCount, reduce)
	}

	return normalize(spikes, minHeight, maxHeight)
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// chunkReducer collapses a non-empty chunk into a single clamped value.
func chunkReducer(typ AmplitudeType, minHeight, maxHeight float64) func([]float64) float64 {
	return func(chunk []float64) float64 {
		var v float64
		switch typ {
		case MAX:
			v = floats.Max(chunk)
		case MIN:
			v = floats.Min(chunk)
		default:
			v = stat.Mean(chunk, nil)
		}

		return utils.Clamp(v, minHeight, maxHeight)
	}
}

// fillToSize repeats every value enough times to reach at least size
// elements, then shrinks the result to exactly size.
func fillToSize(values []float64, size int, reduce func([]float64) float64) []float64 {
	repeat := int(ceilDiv(size, len(values)))

	filled := make([]float64, 0, len(values)*repeat)
	for _, v := range values {
		for range repeat {
			filled = append(filled, v)
		}
	}

	return chunkToSize(filled, size, reduce)
}

// chunkToSize shrinks values to exactly size elements (size <= len(values)).
//
// Each pass sheds the remainder by dropping every remainderIndex-th element,
// starting at index 0, then reduces consecutive chunks of len/size elements.
// At least one pass always runs, so an input already at size is still
// reduced (and clamped) one element per chunk. A trailing partial chunk is
// kept, so a pass can overshoot; passes repeat on their own output until the
// length matches.
func chunkToSize(values []float64, size int, reduce func([]float64) float64) []float64 {
	current := values

	// Every pass with a remainder drops index 0, so the length strictly
	// decreases and len(values) passes is a hard upper bound.
	for range len(values) + 1 {
		if len(current) < size || size <= 0 {
			return current
		}

		n := len(current)
		chunkSize := n / size
		remainder := n % size

		var remainderIndex int
		if remainder != 0 {
			remainderIndex = int(ceilDiv(n, remainder))
		}

		kept := current
		if remainderIndex != 0 {
			kept = make([]float64, 0, n-remainder)
			for i, v := range current {
				if i%remainderIndex != 0 {
					kept = append(kept, v)
				}
			}
		}

		next := make([]float64, 0, size+1)
		for start := 0; start < len(kept); start += chunkSize {
			end := min(start+chunkSize, len(kept))
			next = append(next, reduce(kept[start:end]))
		}

		current = next
		if len(current) <= size {
			return current
		}
	}

	return current
}

// normalize maps [min(values), max(values)] linearly onto [minHeight, maxHeight].
func normalize(values []float64, minHeight, maxHeight float64) []float64 {
	if len(values) == 0 {
		return values
	}

	lo := floats.Min(values)
	hi := floats.Max(values)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (maxHeight-minHeight)*utils.SafeDiv(v-lo, hi-lo) + minHeight
	}

	return out
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}

	return (a + b - 1) / b
}
