// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/internal/store"
	"github.com/ik5/audwave/marker"
	"github.com/ik5/audwave/timeline"
	"github.com/ik5/audwave/waveform"
)

// markerSession is the state behind the marker shell.
type markerSession struct {
	out     io.Writer
	track   audwave.Track
	cols    int
	rows    int
	window  *marker.Window
	editor  *marker.Editor
	store   *store.Store
	session store.Session
}

func (a *app) marker(ctx context.Context, args []string) error {
	fs := a.flags("marker", "<file>")
	cols := fs.Int("width", 72, "view columns")
	rows := fs.Int("height", 8, "zoomed view rows")
	size := fs.Float64("window", marker.DefaultWindowSize, "zoomed fraction of the track")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}

	w, err := marker.NewWindow(*size)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	track, err := a.decode(path)
	if err != nil {
		return err
	}

	st, sess, err := a.session(ctx, track)
	if err != nil {
		return err
	}
	defer st.Close()

	s, err := newMarkerSession(ctx, a.out, track, st, sess, w, *cols, *rows)
	if err != nil {
		return err
	}

	sh := s.shell()
	fmt.Fprintln(a.out, trackHeader(track))
	s.show()

	return sh.loop(ctx, a.logger)
}

func newMarkerSession(ctx context.Context, out io.Writer, track audwave.Track, st *store.Store,
	sess store.Session, w marker.Window, cols, rows int,
) (*markerSession, error) {
	positions, err := st.LoadMarkers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	// One column is one pixel here, so handles are a column wide.
	editor := marker.NewEditor(marker.NewList(positions...), &w, marker.WithRadius(1), marker.WithSpikeWidth(1))

	return &markerSession{
		out:     out,
		track:   track,
		cols:    cols,
		rows:    rows,
		window:  editor.Window(),
		editor:  editor,
		store:   st,
		session: sess,
	}, nil
}

func (s *markerSession) shell() *shell {
	sh := newShell("marker", s.out)
	sh.handle("view", "", "show the overview and the zoomed window", s.view)
	sh.handle("scrub", "<x>", "move the window to overview column x", s.scrub)
	sh.handle("tap", "<x> [y]", "add a marker at column x of the zoomed view, or remove the one there", s.tap)
	sh.handle("list", "", "list markers with their time", s.list)
	sh.handle("save", "", "store the markers", s.save)

	return sh
}

func (s *markerSession) canvas() marker.Canvas {
	return marker.Canvas{Width: float64(s.cols), Height: float64(s.rows)}
}

func (s *markerSession) show() {
	all := s.editor.Markers().Values()

	fmt.Fprintln(s.out, renderWindow(renderMarkers(all, s.cols), s.window.Offset, s.window.Size))

	levels := s.track.Levels(s.rows)
	for _, line := range renderBars(s.window.Slice(levels), waveform.DefaultStyle(), s.cols, s.rows) {
		fmt.Fprintln(s.out, line)
	}
	fmt.Fprintln(s.out, renderMarkers(s.window.Project(all), s.cols))

	start := int64(s.window.Offset * float64(s.track.DurationMs))
	end := int64((s.window.Offset + s.window.Size) * float64(s.track.DurationMs))
	fmt.Fprintf(s.out, "window %s - %s\n", timeline.FormatMmSs(start), timeline.FormatMmSs(end))
}

func (s *markerSession) view(context.Context, []string) error {
	s.show()
	return nil
}

func (s *markerSession) scrub(_ context.Context, args []string) error {
	v, err := floatArgs(args, 1)
	if err != nil {
		return err
	}

	s.window.Scrub(v[0], float64(s.cols))
	s.show()

	return nil
}

func (s *markerSession) tap(_ context.Context, args []string) error {
	v, err := floatArgs(args, 1)
	if err != nil {
		return err
	}

	p := marker.Point{X: v[0], Y: float64(s.rows) / 2}
	if len(v) > 1 {
		p.Y = v[1]
	}

	action, idx, pos := s.editor.Tap(p, s.canvas())
	fmt.Fprintf(s.out, "%s marker %d at %s\n", action, idx, timeline.FormatMmSs(marker.Ms(pos, s.track.DurationMs)))
	s.show()

	return nil
}

func (s *markerSession) list(context.Context, []string) error {
	for i, pos := range s.editor.Markers().Values() {
		fmt.Fprintf(s.out, "%2d  %.4f  %s\n", i, pos, timeline.FormatMmSs(marker.Ms(pos, s.track.DurationMs)))
	}

	return nil
}

func (s *markerSession) save(ctx context.Context, _ []string) error {
	values := s.editor.Markers().Values()
	if err := s.store.SaveMarkers(ctx, s.session.ID, values); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "saved %d markers\n", len(values))

	return nil
}
