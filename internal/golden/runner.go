// Package golden checks scripted sessions against recorded transcripts.
// A script foo.math is run in test mode and its cleaned output is compared
// with foo.expected next to it.
package golden

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"mathshell/internal/logger"
)

// ScriptExt is the extension of session scripts.
const ScriptExt = ".math"

// Session runs script and writes the transcript to out.
type Session func(ctx context.Context, script io.Reader, out io.Writer) error

// Result is the outcome of checking one script.
type Result struct {
	Script   string
	Expected string
	Actual   string
	Diff     string
}

// Passed reports whether the transcript matched.
func (r *Result) Passed() bool { return r.Diff == "" }

// Runner runs scripts through a Session.
type Runner struct {
	session Session
}

// NewRunner creates a runner.
func NewRunner(session Session) *Runner {
	return &Runner{session: session}
}

// ExpectedPath returns the transcript path for a script.
func ExpectedPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + ".expected"
}

// Transcript runs the script and returns its cleaned output.
func (r *Runner) Transcript(ctx context.Context, script string) (string, error) {
	f, err := os.Open(script)
	if err != nil {
		return "", fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out bytes.Buffer
	if err := r.session(ctx, f, &out); err != nil {
		return "", fmt.Errorf("session failed for %s: %w", script, err)
	}
	return Clean(out.String()), nil
}

// Check runs the script and compares it with its expected transcript.
func (r *Runner) Check(ctx context.Context, script string) (*Result, error) {
	actual, err := r.Transcript(ctx, script)
	if err != nil {
		return nil, err
	}
	expectedPath := ExpectedPath(script)
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read expected file %s: %w", expectedPath, err)
	}
	expected := Clean(string(content))

	res := &Result{Script: script, Expected: expected, Actual: actual, Diff: Diff(expected, actual)}
	logger.Debug("Golden check", "script", script, "passed", res.Passed())
	return res, nil
}

// Record runs the script and writes its expected transcript.
func (r *Runner) Record(ctx context.Context, script string) (string, error) {
	actual, err := r.Transcript(ctx, script)
	if err != nil {
		return "", err
	}
	path := ExpectedPath(script)
	if err := os.WriteFile(path, []byte(actual+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write expected file %s: %w", path, err)
	}
	return path, nil
}

// CheckDir checks every script in dir, in name order.
func (r *Runner) CheckDir(ctx context.Context, dir string) ([]*Result, error) {
	scripts, err := FindScripts(dir)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(scripts))
	for _, s := range scripts {
		res, err := r.Check(ctx, s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// FindScripts returns the scripts in dir, sorted.
func FindScripts(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ScriptExt))
	if err != nil {
		return nil, fmt.Errorf("failed to find scripts: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Clean strips ANSI sequences, carriage returns and trailing whitespace
// so transcripts compare by content.
func Clean(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
