// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"math"

	"github.com/ik5/audwave/timeline"
	"github.com/ik5/audwave/utils"
)

// DefaultEdgeTolerance is how close, in pixels, a drag must start to a
// segment edge to grab that edge.
const DefaultEdgeTolerance = 16.0

// Zone is the part of the active segment a drag tick acted on.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneEnd
	ZoneStart
	ZoneBody
)

func (z Zone) String() string {
	switch z {
	case ZoneEnd:
		return "end"
	case ZoneStart:
		return "start"
	case ZoneBody:
		return "body"
	default:
		return "none"
	}
}

// DragEvent is one tick of a horizontal drag: the pointer position and the
// distance it moved since the previous tick, both in pixels.
type DragEvent struct {
	X     float64
	Delta float64
}

// Editor applies tap and drag gestures to a segment list drawn across a
// canvas. It owns the active selection; the list is shared with the caller.
type Editor struct {
	segments  *List
	mapper    timeline.Mapper
	tolerance float64
	active    int
}

// Option configures an Editor.
type Option func(*Editor)

// WithEdgeTolerance overrides DefaultEdgeTolerance.
func WithEdgeTolerance(px float64) Option {
	return func(e *Editor) {
		e.tolerance = math.Max(px, 0)
	}
}

// NewEditor edits segs on a canvas described by m. A nil list starts empty.
func NewEditor(m timeline.Mapper, segs *List, opts ...Option) *Editor {
	if segs == nil {
		segs = NewList()
	}

	e := &Editor{
		segments:  segs,
		mapper:    m,
		tolerance: DefaultEdgeTolerance,
		active:    -1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Segments is the edited list.
func (e *Editor) Segments() *List { return e.segments }

// Mapper is the current canvas mapping.
func (e *Editor) Mapper() timeline.Mapper { return e.mapper }

// SetMapper updates the canvas mapping after a layout change.
func (e *Editor) SetMapper(m timeline.Mapper) { e.mapper = m }

// Active returns the selected segment index.
func (e *Editor) Active() (int, bool) {
	if e.active < 0 || e.active >= e.segments.Len() {
		return -1, false
	}

	return e.active, true
}

// Select makes i the active segment.
func (e *Editor) Select(i int) error {
	if _, ok := e.segments.At(i); !ok {
		return ErrIndexOutOfRange
	}

	e.active = i

	return nil
}

// ClearSelection deselects any active segment.
func (e *Editor) ClearSelection() { e.active = -1 }

// Tap toggles the selection of the first segment whose span contains x.
// Tapping the active segment deselects it; taps outside every segment do
// nothing. It returns the selection after the tap.
func (e *Editor) Tap(x float64) (int, bool) {
	x = e.mapper.ClampPx(x)

	for i, s := range e.segments.items {
		if x < e.mapper.ToPx(s.Start) || x > e.mapper.ToPx(s.End) {
			continue
		}

		if e.active == i {
			e.active = -1
		} else {
			e.active = i
		}

		break
	}

	return e.Active()
}

// Drag applies one drag tick to the active segment.
//
// Zones are tested in order and only the first match applies: a pointer
// within the tolerance of the end edge moves the end to the pointer, one
// within the tolerance of the start edge moves the start, and one strictly
// between both edge zones shifts the whole segment by ev.Delta. Every edge
// is clamped against its neighbours or the track bounds, so a blocked edge
// compresses the segment instead of crossing another one.
func (e *Editor) Drag(ev DragEvent) Zone {
	idx, ok := e.Active()
	if !ok {
		return ZoneNone
	}

	seg := e.segments.items[idx]
	lo, hi := e.bounds(idx)

	x := e.mapper.ClampPx(ev.X)
	xStart := e.mapper.ToPx(seg.Start)
	xEnd := e.mapper.ToPx(seg.End)

	var zone Zone
	next := seg

	switch {
	case math.Abs(xEnd-x) <= e.tolerance:
		zone = ZoneEnd
		next.End = utils.Clamp(e.mapper.ToMs(x), seg.Start, hi)
	case math.Abs(xStart-x) <= e.tolerance:
		zone = ZoneStart
		next.Start = utils.Clamp(e.mapper.ToMs(x), lo, seg.End)
	case x > xStart+e.tolerance && x < xEnd-e.tolerance:
		zone = ZoneBody
		next.Start = utils.Clamp(e.mapper.ToMs(xStart+ev.Delta), lo, seg.End)
		next.End = utils.Clamp(e.mapper.ToMs(xEnd+ev.Delta), seg.Start, hi)
		if next.End < next.Start {
			next.End = next.Start
		}
	default:
		return ZoneNone
	}

	e.segments.items[idx] = next

	return zone
}

// bounds returns the range segment i may occupy: the previous segment's end
// (or 0) and the next segment's start (or the track duration).
func (e *Editor) bounds(i int) (lo, hi int64) {
	hi = e.mapper.DurationMs

	if prev, ok := e.segments.At(i - 1); ok {
		lo = prev.End
	}
	if next, ok := e.segments.At(i + 1); ok {
		hi = next.Start
	}

	return lo, hi
}

// Add appends a segment starting where the last one ends (or at 0) and
// lasting a third of the track, cut at the track end. It does nothing when
// the last segment already reaches the end of the track.
func (e *Editor) Add() (Segment, bool) {
	duration := e.mapper.DurationMs

	var start int64
	if last, ok := e.segments.Last(); ok {
		if last.End >= duration {
			return Segment{}, false
		}
		start = last.End
	}

	s := Segment{Start: start, End: min(start+duration/3, duration)}
	e.segments.Append(s)

	return s, true
}

// RemoveActive deletes the active segment and clears the selection.
func (e *Editor) RemoveActive() (Segment, error) {
	idx, ok := e.Active()
	if !ok {
		return Segment{}, ErrNoActiveSegment
	}

	s := e.segments.items[idx]
	if err := e.segments.RemoveAt(idx); err != nil {
		return Segment{}, err
	}
	e.active = -1

	return s, nil
}
