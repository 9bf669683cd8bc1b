// Package plot draws expressions as ASCII line charts in the terminal.
package plot

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/guptarohit/asciigraph"

	"mathshell/pkg/mathtypes"
)

// Default sampling window and chart size.
const (
	DefaultWidth  = 60
	DefaultHeight = 15
	DefaultXMin   = -10.0
	DefaultXMax   = 10.0
)

// Terminal samples an expression over a fixed x range and writes the
// chart to its writer. It implements mathtypes.Plotter.
type Terminal struct {
	backend  mathtypes.Backend
	writer   io.Writer
	width    int
	height   int
	xMin     float64
	xMax     float64
	color    asciigraph.AnsiColor
	disabled bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithSize sets the number of samples and the chart height in rows.
// Non-positive values keep the defaults.
func WithSize(width, height int) Option {
	return func(t *Terminal) {
		if width > 1 {
			t.width = width
		}
		if height > 0 {
			t.height = height
		}
	}
}

// WithRange sets the sampled interval. An empty interval is ignored.
func WithRange(xMin, xMax float64) Option {
	return func(t *Terminal) {
		if xMin < xMax {
			t.xMin, t.xMax = xMin, xMax
		}
	}
}

// WithWriter sets the chart destination. Default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(t *Terminal) {
		if w != nil {
			t.writer = w
		}
	}
}

// WithColor sets the series colour by asciigraph colour name, such as
// "blue" or "red". Unknown names leave the terminal default.
func WithColor(name string) Option {
	return func(t *Terminal) {
		if c, ok := asciigraph.ColorNames[name]; ok {
			t.color = c
		}
	}
}

// Disabled makes every Plot call fail with mathtypes.ErrDependencyMissing.
func Disabled() Option {
	return func(t *Terminal) {
		t.disabled = true
	}
}

// New creates a terminal plotter that compiles expressions through backend.
func New(backend mathtypes.Backend, opts ...Option) *Terminal {
	t := &Terminal{
		backend: backend,
		writer:  os.Stdout,
		width:   DefaultWidth,
		height:  DefaultHeight,
		xMin:    DefaultXMin,
		xMax:    DefaultXMax,
		color:   asciigraph.Default,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Plot samples e in variable and writes the chart. It blocks until the
// chart has been written.
func (t *Terminal) Plot(e mathtypes.Expression, variable string) error {
	if t.disabled || t.backend == nil {
		return fmt.Errorf("plotting is disabled: %w", mathtypes.ErrDependencyMissing)
	}
	series, err := t.Sample(e, variable)
	if err != nil {
		return err
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(t.height),
		asciigraph.Caption(e.String()),
		asciigraph.SeriesColors(t.color),
	)
	if _, err := fmt.Fprintln(t.writer, chart); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// Sample evaluates e at width evenly spaced points of [xMin, xMax].
// Points where e is undefined or infinite are NaN, which the chart draws
// as gaps. It fails when no point is finite.
func (t *Terminal) Sample(e mathtypes.Expression, variable string) ([]float64, error) {
	fn, err := t.backend.Numeric(e, variable)
	if err != nil {
		return nil, fmt.Errorf("cannot plot %s: %w", e, err)
	}
	series := make([]float64, t.width)
	step := (t.xMax - t.xMin) / float64(t.width-1)
	finite := 0
	for i := range series {
		v := fn(t.xMin + float64(i)*step)
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		if !math.IsNaN(v) {
			finite++
		}
		series[i] = v
	}
	if finite == 0 {
		return nil, fmt.Errorf("%s has no real value on [%g, %g]: %w", e, t.xMin, t.xMax, mathtypes.ErrEvaluation)
	}
	return series, nil
}
