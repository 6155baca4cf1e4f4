// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/timeline"
	"github.com/ik5/audwave/waveform"
)

func (a *app) bars(args []string) error {
	fs := a.flags("bars", "<file>")
	cols := fs.Int("width", 72, "columns to draw")
	rows := fs.Int("height", 12, "rows to draw")
	typ := fs.String("type", "avg", "chunk reduction: avg, max or min")
	align := fs.String("align", "center", "spike alignment: center, top or bottom")
	progress := fs.Float64("progress", -1, "draw a playback cursor at this fraction of the track")

	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := fileArg(fs)
	if err != nil {
		return err
	}

	style := waveform.DefaultStyle()
	if style.Type, err = waveform.ParseAmplitudeType(*typ); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if style.Alignment, err = waveform.ParseAlignment(*align); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	// A file that fails to decode still draws, flat.
	track := audwave.Load(path, audwave.WithLogger(a.logger))

	fmt.Fprintln(a.out, trackHeader(track))
	for _, line := range renderBars(track.Levels(*rows), style, *cols, *rows) {
		fmt.Fprintln(a.out, line)
	}

	if *progress >= 0 {
		x := int(waveform.ProgressX(*progress, float64(*cols)))
		x = min(x, *cols-1)
		ms := int64(*progress * float64(track.DurationMs))
		fmt.Fprintf(a.out, "%s^ %s\n", strings.Repeat(" ", max(x, 0)), timeline.FormatMmSs(ms))
	}

	return nil
}

// trackHeader is the one-line summary printed above every view.
func trackHeader(t audwave.Track) string {
	size := "?"
	if fi, err := os.Stat(t.Path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}

	format := t.Format
	if format == "" {
		format = "unreadable"
	}

	return fmt.Sprintf("%s  %s  %s  %s  %s Hz",
		filepath.Base(t.Path), format, timeline.FormatMmSs(t.DurationMs), size, humanize.Comma(int64(t.SampleRate)))
}

func (a *app) meter(ctx context.Context, args []string) error {
	fs := a.flags("meter", "<file>")
	cols := fs.Int("width", 60, "meter length")
	realtime := fs.Bool("realtime", false, "replay at the speed of the track")

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

	live := waveform.NewLive(*cols, 0)
	tick := time.Second / audio.DefaultAmplitudesPerSecond

	fmt.Fprintln(a.out, trackHeader(track))
	for _, v := range track.Amplitudes {
		live.Push(float64(v))

		if !*realtime {
			continue
		}

		fmt.Fprintf(a.out, "\r%s", sparkline(live.Values(), live.MaxAmplitude()))
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return ctx.Err()
		case <-time.After(tick):
		}
	}

	fmt.Fprintf(a.out, "\r%s\n", sparkline(live.Values(), live.MaxAmplitude()))
	fmt.Fprintf(a.out, "peak %s\n", humanize.Comma(int64(live.MaxAmplitude())))

	return nil
}
