// Package shell is a line-oriented front end to the simulator. It reads one
// command per line, runs it against the engine and prints what changed.
package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"bloomsim/internal/hashing"
	"bloomsim/internal/pulse"
	"bloomsim/internal/render"
	"bloomsim/internal/simulator"
	"bloomsim/pkg/logger"
)

var ErrUnknownCommand = errors.New("unknown command")

// maxLineBytes bounds a single command line.
const maxLineBytes = 16 << 20

const helpText = `commands:
  insert <text>   add text to the filter and the reference set
  query <text>    ask the filter about text and grade the answer
  reset           clear the filter and the reference set
  show            print the slot table and the reference set
  stats           print outcome counters
  hashes [text]   list hash functions, or the slots they pick for text
  help            print this help
  quit            leave the shell
`

type Options struct {
	// Prompt is printed before each line is read. Empty disables it.
	Prompt string
	// Show prints the slot table after every insert, query and reset.
	Show bool
}

type Shell struct {
	engine *simulator.Engine
	pulse  *pulse.Pulse
	out    *syncWriter
	log    logger.Logger
	opts   Options
}

// New builds a Shell. p may be nil, in which case query highlighting is
// rendered once without the delayed replay.
func New(engine *simulator.Engine, p *pulse.Pulse, out io.Writer, log logger.Logger, opts Options) *Shell {
	if log == nil {
		log = logger.Nop()
	}
	return &Shell{
		engine: engine,
		pulse:  p,
		out:    &syncWriter{w: out},
		log:    log,
		opts:   opts,
	}
}

// Run executes commands from in until EOF, quit or ctx is done. Command
// errors are printed and the session goes on; read errors end it.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if s.pulse != nil {
		defer s.pulse.Stop()
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			s.log.Debug("command failed", "line", scanner.Text(), "error", err)
			s.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. Blank lines and lines starting with '#'
// are ignored.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)

	// A delayed query frame must not land on top of whatever this command
	// draws. A new query replaces the pending frame itself.
	if s.pulse != nil && cmd != "query" && cmd != "check" {
		s.pulse.Stop()
	}

	switch cmd {
	case "insert", "add":
		if err := s.engine.Insert(arg); err != nil {
			return false, err
		}
		if text := simulator.Normalize(arg); text != "" {
			s.printf("inserted %q\n", text)
		}
		if s.opts.Show {
			s.frame(s.engine.Snapshot())
		}
	case "query", "check":
		res, err := s.engine.Query(arg)
		if err != nil {
			return false, err
		}
		s.write(func(w io.Writer) error { return render.Result(w, res) })
		if s.opts.Show {
			if s.pulse != nil {
				s.pulse.Trigger(ctx, res.Snapshot, s.frame)
			} else {
				s.frame(res.Snapshot)
			}
		}
	case "reset", "clear":
		s.engine.Reset()
		s.printf("reset\n")
		if s.opts.Show {
			s.frame(s.engine.Snapshot())
		}
	case "show":
		s.frame(s.engine.Snapshot())
	case "stats":
		stats := s.engine.Stats()
		s.write(func(w io.Writer) error { return render.Stats(w, stats) })
	case "hashes":
		return false, s.hashes(arg)
	case "help", "?":
		s.printf("%s", helpText)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w %q, try help", ErrUnknownCommand, cmd)
	}
	return false, nil
}

func (s *Shell) hashes(arg string) error {
	names := s.engine.HashFunctions()
	if simulator.Normalize(arg) == "" {
		s.printf("active: %s\navailable: %s\n", strings.Join(names, ", "), strings.Join(hashing.Names(), ", "))
		return nil
	}
	targets, err := s.engine.Targets(arg)
	if err != nil {
		return err
	}
	s.write(func(w io.Writer) error { return render.Targets(w, names, targets) })
	return nil
}

func (s *Shell) frame(snap simulator.Snapshot) {
	s.write(func(w io.Writer) error { return render.Snapshot(w, snap) })
}

func (s *Shell) prompt() {
	if s.opts.Prompt != "" {
		s.printf("%s", s.opts.Prompt)
	}
}

func (s *Shell) printf(format string, args ...interface{}) {
	s.write(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// write renders into a buffer first so a delayed frame never interleaves
// with other output.
func (s *Shell) write(fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Error("render failed", "error", err)
		return
	}
	if _, err := s.out.Write(buf.Bytes()); err != nil {
		s.log.Error("write failed", "error", err)
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
