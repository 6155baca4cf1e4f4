// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// errQuit ends a shell without reporting an error.
var errQuit = errors.New("quit")

// command is one shell verb. run receives the arguments after the verb.
type command struct {
	args string
	help string
	run  func(ctx context.Context, args []string) error
}

type shell struct {
	name     string
	out      io.Writer
	commands map[string]command
	order    []string
}

func newShell(name string, out io.Writer) *shell {
	s := &shell{name: name, out: out, commands: map[string]command{}}
	s.handle("help", "", "list commands", func(context.Context, []string) error {
		s.usage()
		return nil
	})
	s.handle("exit", "", "leave the shell", func(context.Context, []string) error { return errQuit })

	return s
}

func (s *shell) handle(name, args, help string, run func(context.Context, []string) error) {
	if _, ok := s.commands[name]; !ok {
		s.order = append(s.order, name)
	}
	s.commands[name] = command{args: args, help: help, run: run}
}

func (s *shell) usage() {
	for _, name := range s.order {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-22s %s\n", strings.TrimSpace(name+" "+c.args), c.help)
	}
}

// exec runs a single input line.
func (s *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	if name == "quit" {
		name = "exit"
	}

	c, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}

	return c.run(ctx, fields[1:])
}

func (s *shell) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.order))
	for _, name := range s.order {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(items...)
}

// loop reads lines until exit, EOF or an interrupt on an empty line.
func (s *shell) loop(ctx context.Context, logger *zap.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.name + "> ",
		HistoryFile:     historyFile(s.name),
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.usage()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("readline: %w", err)
		}

		if err := s.exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}

			logger.Debug("shell command failed", zap.String("line", line), zap.Error(err))
			fmt.Fprintln(rl.Stderr(), "error:", err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func historyFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".audwave_"+name+"_history")
}

func floatArgs(args []string, want int) ([]float64, error) {
	if len(args) < want {
		return nil, fmt.Errorf("need %d numeric arguments, got %d", want, len(args))
	}

	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}

	return out, nil
}
