// SPDX-License-Identifier: EPL-2.0

// Command audwave draws waveforms of audio files in the terminal and edits
// their segments and markers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/ik5/audwave/internal/logging"
)

const usage = `usage: audwave <command> [flags] <file>

commands:
  bars      draw the waveform of a file
  meter     replay the amplitudes of a file through a live meter
  segment   edit the segments of a file interactively
  marker    place markers on a file interactively
  export    write the stored segments of a file as WAV files
  sessions  list stored editing sessions

environment:
  AUDWAVE_DB         session database path
  AUDWAVE_LOG_LEVEL  debug, info, warn or error
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg := loadConfig(getenv)

	logger, err := logging.New(
		logging.WithLevel(cfg.LogLevel),
		logging.WithDevelopment(true),
		logging.WithOutput("stderr"),
	)
	if err != nil {
		fmt.Fprintln(stderr, "audwave: logger:", err)
		return 1
	}
	defer func() { _ = logging.Sync(logger) }()

	a := &app{cfg: cfg, logger: logger, out: stdout, errOut: stderr}

	var cmdErr error
	switch args[0] {
	case "bars":
		cmdErr = a.bars(args[1:])
	case "meter":
		cmdErr = a.meter(ctx, args[1:])
	case "segment":
		cmdErr = a.segment(ctx, args[1:])
	case "marker":
		cmdErr = a.marker(ctx, args[1:])
	case "export":
		cmdErr = a.export(ctx, args[1:])
	case "sessions":
		cmdErr = a.sessions(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "audwave: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, flag.ErrHelp):
		return 0
	case errors.Is(cmdErr, errUsage):
		fmt.Fprintln(stderr, "audwave:", cmdErr)
		return 2
	}

	logger.Debug("command failed", zap.String("command", args[0]), zap.Error(cmdErr))
	fmt.Fprintln(stderr, "audwave:", cmdErr)

	return 1
}
