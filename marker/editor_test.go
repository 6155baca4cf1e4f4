// SPDX-License-Identifier: EPL-2.0

package marker

import "testing"

func TestEditor_Tap(t *testing.T) {
	t.Parallel()

	canvas := Canvas{Width: 500, Height: 100}

	tests := []struct {
		name       string
		markers    []float64
		tap        Point
		wantAction Action
		wantIdx    int
		wantPos    float64
		wantLen    int
	}{
		{
			// Handle of 0.5 is drawn at (251, 50).
			name:       "tap on handle removes",
			markers:    []float64{0.1, 0.5},
			tap:        Point{X: 255, Y: 52},
			wantAction: ActionRemoved,
			wantIdx:    1,
			wantPos:    0.5,
			wantLen:    1,
		},
		{
			name:       "tap beyond reach adds",
			markers:    []float64{0.5},
			tap:        Point{X: 261, Y: 50},
			wantAction: ActionAdded,
			wantIdx:    1,
			wantPos:    261.0/500*0.2 + 0.4,
			wantLen:    2,
		},
		{
			name:       "tap on empty view adds",
			tap:        Point{X: 125, Y: 10},
			wantAction: ActionAdded,
			wantIdx:    0,
			wantPos:    0.45,
			wantLen:    1,
		},
		{
			name:       "tap past right edge clamps",
			tap:        Point{X: 900, Y: 50},
			wantAction: ActionAdded,
			wantIdx:    0,
			wantPos:    0.6,
			wantLen:    1,
		},
		{
			name:       "first hit wins on overlapping handles",
			markers:    []float64{0.5, 0.5},
			tap:        Point{X: 251, Y: 50},
			wantAction: ActionRemoved,
			wantIdx:    0,
			wantPos:    0.5,
			wantLen:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &Window{Size: 0.2, Offset: 0.4}
			e := NewEditor(NewList(tt.markers...), w)

			action, idx, pos := e.Tap(tt.tap, canvas)
			if action != tt.wantAction || idx != tt.wantIdx || !approx(pos, tt.wantPos) {
				t.Errorf("Tap() = %v, %d, %v, want %v, %d, %v",
					action, idx, pos, tt.wantAction, tt.wantIdx, tt.wantPos)
			}
			if e.Markers().Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", e.Markers().Len(), tt.wantLen)
			}
		})
	}
}

func TestEditor_TapEmptyCanvas(t *testing.T) {
	t.Parallel()

	e := NewEditor(nil, nil)
	if action, _, _ := e.Tap(Point{X: 10, Y: 10}, Canvas{}); action != ActionNone {
		t.Errorf("Tap() on zero canvas = %v, want none", action)
	}
	if e.Markers().Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Markers().Len())
	}
}

func TestEditor_Options(t *testing.T) {
	t.Parallel()

	w := &Window{Size: 0.2, Offset: 0.4}
	e := NewEditor(NewList(0.5), w, WithRadius(20), WithSpikeWidth(0))

	c := e.Center(0.5, Canvas{Width: 500, Height: 100})
	if !approx(c.X, 250) || c.Y != 50 {
		t.Errorf("Center() = %+v, want {250 50}", c)
	}

	// 15px away is outside the default reach but inside 20*1.2.
	if _, ok := e.HitTest(Point{X: 265, Y: 50}, Canvas{Width: 500, Height: 100}); !ok {
		t.Error("HitTest() missed with enlarged radius")
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	for a, want := range map[Action]string{ActionNone: "none", ActionAdded: "added", ActionRemoved: "removed"} {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", a, got, want)
		}
	}
}
