// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/internal/store"
	"github.com/ik5/audwave/player"
	"github.com/ik5/audwave/segment"
	"github.com/ik5/audwave/timeline"
)

// segmentSession is the state behind the segment shell.
type segmentSession struct {
	out     io.Writer
	logger  *zap.Logger
	track   audwave.Track
	cols    int
	editor  *segment.Editor
	store   *store.Store
	session store.Session
	player  *player.Player
	cursor  atomic.Int64
	rate    int
}

func (a *app) segment(ctx context.Context, args []string) error {
	fs := a.flags("segment", "<file>")
	cols := fs.Int("width", 72, "timeline columns")
	tolerance := fs.Float64("tolerance", 1, "edge grab distance in columns")
	rate := fs.Int("rate", 16000, "sample rate of exported segments")
	mute := fs.Bool("mute", false, "disable playback")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
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

	s, err := newSegmentSession(ctx, a.out, a.logger, track, st, sess, *cols, *tolerance, *rate)
	if err != nil {
		return err
	}

	if !*mute {
		out, err := newSpeaker(track.SampleRate)
		if err != nil {
			a.logger.Warn("playback disabled", zap.Error(err))
		} else {
			s.attachPlayer(out)
			defer s.player.Close()
		}
	}

	sh := s.shell()
	fmt.Fprintln(a.out, trackHeader(track))
	s.show()

	return sh.loop(ctx, a.logger)
}

func newSegmentSession(ctx context.Context, out io.Writer, logger *zap.Logger, track audwave.Track,
	st *store.Store, sess store.Session, cols int, tolerance float64, rate int,
) (*segmentSession, error) {
	segs, err := st.LoadSegments(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	m := timeline.NewMapper(float64(cols), track.DurationMs)

	s := &segmentSession{
		out:     out,
		logger:  logger,
		track:   track,
		cols:    cols,
		editor:  segment.NewEditor(m, segment.NewList(segs...), segment.WithEdgeTolerance(tolerance)),
		store:   st,
		session: sess,
		rate:    rate,
	}
	s.cursor.Store(-1)

	return s, nil
}

func (s *segmentSession) attachPlayer(out player.Output) {
	open := func() (audio.Source, error) {
		src, _, err := audwave.Open(s.track.Path, audwave.WithLogger(s.logger))
		return src, err
	}

	s.player = player.New(open, out,
		player.WithLogger(s.logger),
		player.WithProgress(func(ms int64) { s.cursor.Store(ms) }),
	)
}

func (s *segmentSession) shell() *shell {
	sh := newShell("segment", s.out)
	sh.handle("list", "", "show the timeline and segments", s.list)
	sh.handle("tap", "<x>", "select or deselect the segment under column x", s.tap)
	sh.handle("select", "<n>", "select segment n", s.selectSegment)
	sh.handle("drag", "<x> <dx>...", "drag the selected segment from column x", s.drag)
	sh.handle("add", "", "append a segment after the last one", s.add)
	sh.handle("remove", "", "delete the selected segment", s.remove)
	sh.handle("play", "", "play or resume the track", s.play)
	sh.handle("pause", "", "pause playback", s.pause)
	sh.handle("stop", "", "stop playback", s.stop)
	sh.handle("save", "", "store the segments", s.save)
	sh.handle("export", "[dir]", "write every segment as a WAV file", s.export)

	return sh
}

func (s *segmentSession) show() {
	active, _ := s.editor.Active()
	segs := s.editor.Segments().Values()

	fmt.Fprintln(s.out, renderTimeline(segs, active, s.editor.Mapper(), s.cols, s.cursor.Load()))
	for i, seg := range segs {
		mark := " "
		if i == active {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %2d  %s - %s  (%s)\n", mark, i,
			timeline.FormatMmSs(seg.Start), timeline.FormatMmSs(seg.End), timeline.FormatMmSs(seg.Duration()))
	}
}

func (s *segmentSession) list(context.Context, []string) error {
	s.show()
	return nil
}

func (s *segmentSession) tap(_ context.Context, args []string) error {
	v, err := floatArgs(args, 1)
	if err != nil {
		return err
	}

	if i, ok := s.editor.Tap(v[0]); ok {
		fmt.Fprintf(s.out, "selected %d\n", i)
	} else {
		fmt.Fprintln(s.out, "nothing selected")
	}
	s.show()

	return nil
}

func (s *segmentSession) selectSegment(_ context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("select takes one index")
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad index %q", args[0])
	}
	if err := s.editor.Select(i); err != nil {
		return err
	}
	s.show()

	return nil
}

// drag moves the pointer from x by each delta in turn, split into ticks of
// at most one column so a grabbed edge stays under the pointer.
func (s *segmentSession) drag(_ context.Context, args []string) error {
	v, err := floatArgs(args, 2)
	if err != nil {
		return err
	}
	if _, ok := s.editor.Active(); !ok {
		return segment.ErrNoActiveSegment
	}

	x := v[0]
	for _, d := range v[1:] {
		ticks := max(int(math.Ceil(math.Abs(d))), 1)
		step := d / float64(ticks)

		zones := map[segment.Zone]int{}
		for range ticks {
			x += step
			zones[s.editor.Drag(segment.DragEvent{X: x, Delta: step})]++
		}

		fmt.Fprintf(s.out, "drag %+g to %g: %s\n", d, x, dominantZone(zones))
	}
	s.show()

	return nil
}

func dominantZone(zones map[segment.Zone]int) segment.Zone {
	best := segment.ZoneNone
	for _, z := range []segment.Zone{segment.ZoneEnd, segment.ZoneStart, segment.ZoneBody} {
		if zones[z] > zones[best] {
			best = z
		}
	}

	return best
}

func (s *segmentSession) add(context.Context, []string) error {
	seg, ok := s.editor.Add()
	if !ok {
		return fmt.Errorf("the last segment already reaches the end of the track")
	}

	fmt.Fprintf(s.out, "added %s\n", seg)
	s.show()

	return nil
}

func (s *segmentSession) remove(context.Context, []string) error {
	seg, err := s.editor.RemoveActive()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "removed %s\n", seg)
	s.show()

	return nil
}

func (s *segmentSession) play(context.Context, []string) error {
	if s.player == nil {
		return fmt.Errorf("playback is not available")
	}

	return s.player.Play()
}

func (s *segmentSession) pause(context.Context, []string) error {
	if s.player == nil {
		return fmt.Errorf("playback is not available")
	}

	s.player.Pause()
	fmt.Fprintf(s.out, "paused at %s\n", timeline.FormatMmSs(s.player.Position()))

	return nil
}

func (s *segmentSession) stop(context.Context, []string) error {
	if s.player != nil {
		s.player.Stop()
	}
	s.cursor.Store(-1)

	return nil
}

func (s *segmentSession) save(ctx context.Context, _ []string) error {
	segs := s.editor.Segments().Values()
	if err := s.store.SaveSegments(ctx, s.session.ID, segs); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "saved %d segments\n", len(segs))

	return nil
}

func (s *segmentSession) export(ctx context.Context, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	files, err := audwave.ExportSegments(ctx, s.track.Path, s.editor.Segments().Values(), dir, s.rate,
		audwave.WithLogger(s.logger))
	if err != nil {
		return err
	}

	printFiles(s.out, files)

	return nil
}
