// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"fmt"
	"slices"
)

// Segment is a [Start, End] range of a track in milliseconds.
type Segment struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Duration of the segment in milliseconds.
func (s Segment) Duration() int64 { return s.End - s.Start }

func (s Segment) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// List is the ordered sequence of segments of one track. Segments are kept
// in start order and never overlap; edits clamp against neighbours instead
// of merging.
type List struct {
	items []Segment
}

// NewList creates a list holding a copy of segs.
func NewList(segs ...Segment) *List {
	return &List{items: slices.Clone(segs)}
}

func (l *List) Len() int { return len(l.items) }

// At returns the segment at i and whether i is in range.
func (l *List) At(i int) (Segment, bool) {
	if i < 0 || i >= len(l.items) {
		return Segment{}, false
	}

	return l.items[i], true
}

// Last returns the final segment, if any.
func (l *List) Last() (Segment, bool) {
	return l.At(len(l.items) - 1)
}

// Replace overwrites the segment at i.
func (l *List) Replace(i int, s Segment) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l.items[i] = s

	return nil
}

// Insert places s at i, shifting later segments right. i may equal Len.
func (l *List) Insert(i int, s Segment) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l.items = slices.Insert(l.items, i, s)

	return nil
}

// Append adds s at the end.
func (l *List) Append(s Segment) {
	l.items = append(l.items, s)
}

// RemoveAt deletes the segment at i.
func (l *List) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l.items = slices.Delete(l.items, i, i+1)

	return nil
}

// Values returns a copy of the segments in order.
func (l *List) Values() []Segment {
	return slices.Clone(l.items)
}

// Valid reports whether every segment is well formed, inside
// [0, durationMs] and ordered without overlap.
func (l *List) Valid(durationMs int64) bool {
	var prevEnd int64
	for _, s := range l.items {
		if s.Start < prevEnd || s.Start > s.End || s.End > durationMs {
			return false
		}
		prevEnd = s.End
	}

	return true
}
