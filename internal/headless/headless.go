// Package headless drives the button from a line-oriented terminal prompt.
package headless

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"
)

// LineReader is the part of *readline.Instance the driver needs.
type LineReader interface {
	Readline() (string, error)
}

// PrintNotifier writes notifications as their own lines.
type PrintNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrintNotifier(out io.Writer) *PrintNotifier {
	return &PrintNotifier{out: out}
}

func (n *PrintNotifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "» %s\n", message)
}

type Driver struct {
	controller ports.ButtonController
	in         LineReader

	mu  sync.Mutex
	out io.Writer
}

func NewDriver(controller ports.ButtonController, in LineReader, out io.Writer) *Driver {
	return &Driver{controller: controller, in: in, out: out}
}

// NewReadline opens an interactive prompt on the terminal.
func NewReadline() (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "▶ ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("state"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
}

// OnLoaded prints the state once a load completes, which is also the
// observation that moves a finished load to Playing.
func (d *Driver) OnLoaded() {
	d.printState(d.controller.Observe())
}

// Run reads commands until quit, EOF or interrupt. An empty line triggers
// the button.
func (d *Driver) Run() error {
	d.printf("Press Enter to play/pause. Commands: state, help, quit.\n")
	d.printState(d.controller.Observe())

	for {
		line, err := d.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "t", "trigger":
			d.controller.Trigger()
			d.printState(d.controller.Observe())
		case "s", "state":
			d.printState(d.controller.Observe())
		case "h", "help":
			d.printf("Enter: play/pause | state: show phase | quit: exit\n")
		case "q", "quit", "exit":
			return nil
		default:
			logger.Log.Debug().Str("line", line).Msg("Unknown command")
			d.printf("unknown command %q\n", line)
		}
	}
}

var glyphText = map[domain.Glyph]string{
	domain.GlyphPlay:    "[ ▶ ]",
	domain.GlyphPause:   "[ ⏸ ]",
	domain.GlyphLoading: "[ … ]",
}

func (d *Driver) printState(state domain.ButtonState) {
	d.printf("%s %s\n", glyphText[state.Glyph()], state.Phase)
}

func (d *Driver) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

// ObservingScheduler calls the after hook once each scheduled callback has
// returned, so the prompt can report what the callback changed.
type ObservingScheduler struct {
	inner ports.Scheduler

	mu    sync.Mutex
	after func()
}

func NewObservingScheduler(inner ports.Scheduler) *ObservingScheduler {
	return &ObservingScheduler{inner: inner}
}

func (s *ObservingScheduler) SetAfter(after func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.after = after
}

func (s *ObservingScheduler) Schedule(delay time.Duration, fn func()) {
	s.inner.Schedule(delay, func() {
		fn()
		s.mu.Lock()
		after := s.after
		s.mu.Unlock()
		if after != nil {
			after()
		}
	})
}
