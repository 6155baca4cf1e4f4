// SPDX-License-Identifier: EPL-2.0

package marker

import (
	"fmt"
	"slices"

	"github.com/ik5/audwave/utils"
)

// List holds marker positions as fractions of the track duration. Order is
// insertion order; duplicates are kept.
type List struct {
	items []float64
}

// NewList creates a list holding a copy of positions.
func NewList(positions ...float64) *List {
	return &List{items: slices.Clone(positions)}
}

func (l *List) Len() int { return len(l.items) }

// At returns the position at i and whether i is in range.
func (l *List) At(i int) (float64, bool) {
	if i < 0 || i >= len(l.items) {
		return 0, false
	}

	return l.items[i], true
}

// Add appends pos, clamped to [0,1], and returns its index.
func (l *List) Add(pos float64) int {
	l.items = append(l.items, utils.Clamp(pos, 0, 1))
	return len(l.items) - 1
}

// RemoveAt deletes the marker at i.
func (l *List) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l.items = slices.Delete(l.items, i, i+1)

	return nil
}

// Values returns a copy of the positions.
func (l *List) Values() []float64 {
	return slices.Clone(l.items)
}

// Ms converts a marker position to a timestamp within durationMs.
func Ms(pos float64, durationMs int64) int64 {
	return int64(pos * float64(durationMs))
}
