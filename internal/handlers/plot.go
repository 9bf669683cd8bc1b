package handlers

import (
	"errors"
	"fmt"
	"strings"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

// PlotUnavailable is printed when no plotting backend is wired.
const PlotUnavailable = "XATO: Grafik chizish uchun grafik moduli mavjud emas (plot.enabled sozlamasini yoqing)."

// PlotHandler draws an expression through the Plotter.
type PlotHandler struct {
	base
}

// NewPlotHandler creates the plot handler.
func NewPlotHandler(deps Deps) *PlotHandler {
	return &PlotHandler{base: newBase(deps, "Plot")}
}

// Route returns classify.Plot.
func (h *PlotHandler) Route() classify.Route { return classify.Plot }

// Name returns "plot".
func (h *PlotHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the plot route.
func (h *PlotHandler) Description() string {
	return "Draw a chart of an expression in one variable"
}

// Usage returns the plot syntax.
func (h *PlotHandler) Usage() string { return "plot <expression>" }

// HelpInfo returns structured help for the plot route.
func (h *PlotHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "plot x^2", Description: "Parabola over the configured x range"},
			{Input: "plot sin(x)/x", Description: "Undefined points are left as gaps"},
		},
		Notes: []string{
			"The range and size come from plot.x_min, plot.x_max, plot.width and plot.height",
			"Plotting can be switched off with plot.enabled",
		},
	}
}

// Handle parses the text after "plot", announces the chart on the status
// writer and blocks until the plotter has drawn it.
func (h *PlotHandler) Handle(line string) string {
	text := strings.TrimSpace(line)
	if len(text) >= 4 {
		text = strings.TrimSpace(text[4:])
	}
	e, err := h.deps.Parser.Parse(text)
	if err != nil {
		return h.fail(line, err)
	}
	if h.deps.Plotter == nil {
		return PlotUnavailable
	}

	fmt.Fprintf(h.deps.status(), "Grafik chizilmoqda: %s ...\n", e)
	if err := h.deps.Plotter.Plot(e, h.variableOf(e)); err != nil {
		if errors.Is(err, mathtypes.ErrDependencyMissing) {
			return PlotUnavailable
		}
		return h.fail(line, err)
	}
	return "Grafik yakunlandi."
}

func (h *PlotHandler) fail(line string, err error) string {
	h.logger.Debug("plot failed", "input", line, "error", err)
	return fmt.Sprintf("Grafik xatosi: %v", err)
}
