package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by a LineReader when the user presses Ctrl-C.
var ErrInterrupt = errors.New("interrupted")

// LineReader supplies input lines. ReadLine returns io.EOF when input is
// exhausted and ErrInterrupt on Ctrl-C. Close unblocks a pending ReadLine.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ReadlineReader reads from the terminal with line editing and a
// persistent history file.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader opens the terminal. An empty historyFile disables
// persistent history.
func NewReadlineReader(prompt, historyFile string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine implements LineReader.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupt
	case err != nil:
		return "", err
	}
	return line, nil
}

// Close implements LineReader.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// Echoer prints what a ScannerReader reads so transcripts show the
// prompt and the input. *output.Printer implements it.
type Echoer interface {
	Prompt(text string)
	Println(text string)
}

// ScannerReader reads lines from any io.Reader: scripts, pipes and tests.
type ScannerReader struct {
	scanner *bufio.Scanner
	echo    Echoer
	script  bool

	mu     sync.Mutex
	closed bool
}

// ScannerOption configures a ScannerReader.
type ScannerOption func(*ScannerReader)

// WithEcho prints the prompt and each line read through e.
func WithEcho(e Echoer) ScannerOption {
	return func(r *ScannerReader) {
		r.echo = e
	}
}

// ScriptMode skips blank lines and lines starting with '#'.
func ScriptMode() ScannerOption {
	return func(r *ScannerReader) {
		r.script = true
	}
}

// NewScannerReader reads lines from in.
func NewScannerReader(in io.Reader, opts ...ScannerOption) *ScannerReader {
	r := &ScannerReader{scanner: bufio.NewScanner(in)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadLine implements LineReader.
func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	for {
		if r.isClosed() {
			return "", io.EOF
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", io.EOF
		}
		line := strings.TrimSuffix(r.scanner.Text(), "\r")
		if r.script {
			if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
		}
		if r.echo != nil {
			r.echo.Prompt(prompt)
			r.echo.Println(line)
		}
		return line, nil
	}
}

// Close implements LineReader. Later reads return io.EOF.
func (r *ScannerReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *ScannerReader) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
