// SPDX-License-Identifier: EPL-2.0

package segment

import (
	"errors"
	"slices"
	"testing"
)

func TestList_Operations(t *testing.T) {
	t.Parallel()

	l := NewList(Segment{0, 100}, Segment{300, 400})

	if err := l.Insert(1, Segment{150, 250}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := l.Replace(2, Segment{300, 450}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	l.Append(Segment{500, 600})

	want := []Segment{{0, 100}, {150, 250}, {300, 450}, {500, 600}}
	if got := l.Values(); !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}

	if err := l.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt() error = %v", err)
	}
	if first, _ := l.At(0); first != (Segment{150, 250}) {
		t.Errorf("At(0) = %v, want [150, 250]", first)
	}
	if last, _ := l.Last(); last != (Segment{500, 600}) {
		t.Errorf("Last() = %v, want [500, 600]", last)
	}
}

func TestList_OutOfRange(t *testing.T) {
	t.Parallel()

	l := NewList(Segment{0, 100})

	if _, ok := l.At(1); ok {
		t.Error("At(1) ok = true on a single element list")
	}
	if err := l.Replace(-1, Segment{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Replace(-1) error = %v", err)
	}
	if err := l.Insert(3, Segment{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Insert(3) error = %v", err)
	}
	if err := l.RemoveAt(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt(1) error = %v", err)
	}
	if _, ok := NewList().Last(); ok {
		t.Error("Last() ok = true on an empty list")
	}
}

func TestList_ValuesIsACopy(t *testing.T) {
	t.Parallel()

	src := []Segment{{0, 10}}
	l := NewList(src...)
	src[0].End = 99

	v := l.Values()
	v[0].Start = 5

	if got, _ := l.At(0); got != (Segment{0, 10}) {
		t.Errorf("At(0) = %v, want [0, 10]", got)
	}
}

func TestList_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		segs []Segment
		want bool
	}{
		{"empty", nil, true},
		{"touching", []Segment{{0, 100}, {100, 200}}, true},
		{"overlap", []Segment{{0, 150}, {100, 200}}, false},
		{"inverted", []Segment{{50, 10}}, false},
		{"past the end", []Segment{{900, 1200}}, false},
		{"negative start", []Segment{{-5, 10}}, false},
	}

	for _, tt := range tests {
		if got := NewList(tt.segs...).Valid(1000); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSegment_Duration(t *testing.T) {
	t.Parallel()

	if got := (Segment{Start: 250, End: 1000}).Duration(); got != 750 {
		t.Errorf("Duration() = %d, want 750", got)
	}
}
