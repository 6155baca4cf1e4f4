// SPDX-License-Identifier: EPL-2.0

package marker

import (
	"math"

	"github.com/ik5/audwave/utils"
)

const (
	// DefaultRadius of the remove handle drawn on a marker, in pixels.
	DefaultRadius = 8.0
	// DefaultSpikeWidth is the width of a drawn marker line, in pixels.
	DefaultSpikeWidth = 2.0

	touchSlop = 1.2
)

// Point is a position on the zoomed canvas, in pixels.
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Canvas is the size of the zoomed view.
type Canvas struct {
	Width, Height float64
}

// Action is what a tap did.
type Action int

const (
	ActionNone Action = iota
	ActionAdded
	ActionRemoved
)

func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionRemoved:
		return "removed"
	default:
		return "none"
	}
}

// Editor interprets taps on the zoomed view as adding or removing markers.
type Editor struct {
	markers    *List
	window     *Window
	radius     float64
	spikeWidth float64
}

// Option configures an Editor.
type Option func(*Editor)

// WithRadius sets the remove handle radius.
func WithRadius(px float64) Option {
	return func(e *Editor) { e.radius = math.Max(px, 0) }
}

// WithSpikeWidth sets the drawn marker width.
func WithSpikeWidth(px float64) Option {
	return func(e *Editor) { e.spikeWidth = math.Max(px, 0) }
}

// NewEditor edits markers through the zoom window w. Both are shared with
// the caller.
func NewEditor(markers *List, w *Window, opts ...Option) *Editor {
	if markers == nil {
		markers = NewList()
	}
	if w == nil {
		w = &Window{Size: DefaultWindowSize}
	}

	e := &Editor{
		markers:    markers,
		window:     w,
		radius:     DefaultRadius,
		spikeWidth: DefaultSpikeWidth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Markers returns the edited marker list.
func (e *Editor) Markers() *List { return e.markers }

// Window returns the visible window the editor maps taps through.
func (e *Editor) Window() *Window { return e.window }

// Center is where the handle of the marker at pos is drawn on c.
func (e *Editor) Center(pos float64, c Canvas) Point {
	return Point{
		X: c.Width*e.window.Local(pos) + e.spikeWidth/2,
		Y: c.Height / 2,
	}
}

// HitTest returns the first marker whose handle is within reach of p.
func (e *Editor) HitTest(p Point, c Canvas) (int, bool) {
	reach := e.radius * touchSlop

	for i, pos := range e.markers.items {
		if e.Center(pos, c).Distance(p) < reach {
			return i, true
		}
	}

	return -1, false
}

// Tap removes the marker under p, or adds one at the track position under
// p when nothing is hit. Points outside the canvas are clamped onto it. It
// returns what happened, the affected index and the marker position.
func (e *Editor) Tap(p Point, c Canvas) (Action, int, float64) {
	if c.Width <= 0 {
		return ActionNone, -1, 0
	}

	p.X = utils.Clamp(p.X, 0, c.Width)
	p.Y = utils.Clamp(p.Y, 0, math.Max(c.Height, 0))

	if idx, ok := e.HitTest(p, c); ok {
		pos := e.markers.items[idx]
		if err := e.markers.RemoveAt(idx); err != nil {
			return ActionNone, -1, 0
		}

		return ActionRemoved, idx, pos
	}

	pos := e.window.Global(p.X / c.Width)
	idx := e.markers.Add(pos)

	return ActionAdded, idx, e.markers.items[idx]
}
