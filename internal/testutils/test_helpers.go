package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mathshell/pkg/mathtypes"
)

// FakePlotter records plot requests and returns a configured error.
type FakePlotter struct {
	Err   error
	Calls []PlotCall
}

// PlotCall is one recorded Plot invocation.
type PlotCall struct {
	Expr     string
	Variable string
}

// Plot implements mathtypes.Plotter.
func (p *FakePlotter) Plot(e mathtypes.Expression, variable string) error {
	p.Calls = append(p.Calls, PlotCall{Expr: e.String(), Variable: variable})
	return p.Err
}

// FaultyBackend wraps a real backend and overrides selected operations.
// An operation listed in Panics panics with the given value; one listed
// in Errors fails with the given error.
type FaultyBackend struct {
	mathtypes.Backend
	Panics map[string]interface{}
	Errors map[string]error
}

func (b *FaultyBackend) fault(op string) error {
	if v, ok := b.Panics[op]; ok {
		panic(v)
	}
	return b.Errors[op]
}

// Parse implements mathtypes.Backend.
func (b *FaultyBackend) Parse(text string) (mathtypes.Expression, error) {
	if err := b.fault("parse"); err != nil {
		return nil, err
	}
	return b.Backend.Parse(text)
}

// Solve implements mathtypes.Backend.
func (b *FaultyBackend) Solve(lhs, rhs mathtypes.Expression, variable string) (mathtypes.Expression, error) {
	if err := b.fault("solve"); err != nil {
		return nil, err
	}
	return b.Backend.Solve(lhs, rhs, variable)
}

// Integrate implements mathtypes.Backend.
func (b *FaultyBackend) Integrate(e mathtypes.Expression, variable string) (mathtypes.Expression, error) {
	if err := b.fault("integrate"); err != nil {
		return nil, err
	}
	return b.Backend.Integrate(e, variable)
}

// Doit implements mathtypes.Backend.
func (b *FaultyBackend) Doit(e mathtypes.Expression) (mathtypes.Expression, error) {
	if err := b.fault("doit"); err != nil {
		return nil, err
	}
	return b.Backend.Doit(e)
}

// Simplify implements mathtypes.Backend.
func (b *FaultyBackend) Simplify(e mathtypes.Expression) (mathtypes.Expression, error) {
	if err := b.fault("simplify"); err != nil {
		return nil, err
	}
	return b.Backend.Simplify(e)
}

// CreateTempFile creates a file with the given content in a test temp dir.
func CreateTempFile(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Should create temp file successfully")
	return path
}

// Script joins input lines into script file content.
func Script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
