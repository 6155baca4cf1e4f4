// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/timeline"
)

func (a *app) export(ctx context.Context, args []string) error {
	fs := a.flags("export", "<file>")
	dir := fs.String("dir", ".", "output directory")
	rate := fs.Int("rate", 16000, "output sample rate")

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

	segs, err := st.LoadSegments(ctx, sess.ID)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("no saved segments for %s, create them with the segment shell", filepath.Base(path))
	}

	files, err := audwave.ExportSegments(ctx, path, segs, *dir, *rate, audwave.WithLogger(a.logger))
	if err != nil {
		return err
	}

	printFiles(a.out, files)

	return nil
}

func printFiles(w io.Writer, files []string) {
	for _, f := range files {
		size := "?"
		if fi, err := os.Stat(f); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}
		fmt.Fprintf(w, "wrote %s (%s)\n", f, size)
	}
}

func (a *app) sessions(ctx context.Context, args []string) error {
	fs := a.flags("sessions", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "no sessions")
		return nil
	}

	for _, s := range list {
		segs, err := st.LoadSegments(ctx, s.ID)
		if err != nil {
			return err
		}
		markers, err := st.LoadMarkers(ctx, s.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "%s  %s  %d segments  %d markers  updated %s\n",
			s.Path, timeline.FormatMmSs(s.DurationMs), len(segs), len(markers), humanize.Time(s.UpdatedAt))
	}

	return nil
}
