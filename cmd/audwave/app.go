// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/internal/store"
)

var errUsage = errors.New("usage")

type app struct {
	cfg    config
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func (a *app) flags(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fs.Usage = func() {
		fmt.Fprintf(a.errOut, "usage: audwave %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}

	return fs
}

// fileArg returns the single positional argument as an absolute path.
func fileArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one file", errUsage, fs.Name())
	}

	return filepath.Abs(fs.Arg(0))
}

func (a *app) decode(path string) (audwave.Track, error) {
	return audwave.Decode(path, audwave.WithLogger(a.logger))
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, a.cfg.DBPath, store.WithLogger(a.logger))
}

// session opens the store and finds or creates the session of track.
func (a *app) session(ctx context.Context, track audwave.Track) (*store.Store, store.Session, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, store.Session{}, err
	}

	sess, err := st.Session(ctx, track.Path, track.DurationMs)
	if err != nil {
		_ = st.Close()
		return nil, store.Session{}, err
	}

	return st, sess, nil
}
