// Package shell runs mathshell's read-dispatch-print loop. Each line is
// classified, answered by its handler and printed; a failing line never
// ends the session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"mathshell/internal/classify"
	"mathshell/internal/handlers"
	"mathshell/internal/logger"
	"mathshell/internal/output"
	"mathshell/internal/testutils"
)

// Fixed loop messages.
const (
	BannerTitle      = "=== Matematik Yechuvchi ==="
	BannerHint       = "Buyruqni kiritib Enter bosing (Yordam uchun: help)"
	InterruptMessage = "Dastur to'xtatildi."
	DefaultPrompt    = ">>> "
)

// Loop reads lines, dispatches them through a handler registry and
// prints the replies.
type Loop struct {
	registry  *handlers.Registry
	reader    LineReader
	printer   *output.Printer
	prompt    string
	testMode  bool
	state     State
	sessionID string
	logger    *log.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithPrompt sets the input prompt. Default is ">>> ".
func WithPrompt(prompt string) Option {
	return func(l *Loop) {
		if prompt != "" {
			l.prompt = prompt
		}
	}
}

// WithTestMode makes the session id deterministic.
func WithTestMode(testMode bool) Option {
	return func(l *Loop) {
		l.testMode = testMode
	}
}

// New creates a loop reading from reader and printing to printer.
func New(registry *handlers.Registry, reader LineReader, printer *output.Printer, opts ...Option) *Loop {
	l := &Loop{
		registry: registry,
		reader:   reader,
		printer:  printer,
		prompt:   DefaultPrompt,
		state:    Prompting,
		logger:   logger.NewStyledLogger("Shell"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current loop state.
func (l *Loop) State() State { return l.state }

// SessionID returns the id of the last session started with Run.
func (l *Loop) SessionID() string { return l.sessionID }

// Run prints the banner and processes lines until exit, end of input,
// an interrupt or cancellation of ctx. Only a failing reader is an error.
func (l *Loop) Run(ctx context.Context) error {
	l.sessionID = testutils.GenerateSessionID(l.testMode)
	l.logger.Info("Session started", "session", l.sessionID)
	defer func() {
		l.setState(Terminated)
		l.logger.Info("Session ended", "session", l.sessionID)
	}()

	l.printer.Banner(BannerTitle)
	l.printer.Banner(BannerHint)

	for {
		l.setState(Prompting)
		line, err := l.read(ctx)
		switch {
		case errors.Is(err, io.EOF):
			l.printer.Success(handlers.Farewell)
			return nil
		case errors.Is(err, ErrInterrupt), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			l.printer.Success(InterruptMessage)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		l.setState(Dispatching)
		if l.dispatch(line) {
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// read waits for the next line or for ctx to end. On cancellation the
// reader is closed so a pending read can return.
func (l *Loop) read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := l.reader.ReadLine(l.prompt)
		ch <- readResult{line: line, err: err}
	}()
	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		_ = l.reader.Close()
		return "", ctx.Err()
	}
}

// Execute answers a single line outside Run and reports whether it was
// an exit request. Blank lines are ignored.
func (l *Loop) Execute(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	l.setState(Dispatching)
	defer l.setState(Terminated)
	return l.dispatch(line)
}

// dispatch answers one line and reports whether the loop should stop.
// A panic inside a handler is printed and the loop goes on.
func (l *Loop) dispatch(line string) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Handler panicked", "input", line, "error", r, "session", l.sessionID)
			l.printer.Error(fmt.Sprintf("Dastur xatosi: %v", r))
			stop = false
		}
	}()

	route, h, err := l.registry.Dispatch(line)
	if err != nil {
		l.printer.Error(fmt.Sprintf("Dastur xatosi: %v", err))
		return false
	}

	reply := h.Handle(line)
	if md, ok := h.(handlers.MarkdownHandler); ok {
		l.printer.Markdown(md.Markdown(), reply)
	} else if reply != "" {
		l.printer.Response(reply)
	}
	return route == classify.Exit
}

func (l *Loop) setState(s State) {
	if l.state != s {
		l.logger.Debug("State change", "state", s, "session", l.sessionID)
	}
	l.state = s
}
