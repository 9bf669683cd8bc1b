package handlers

import (
	"fmt"
	"strings"
	"unicode"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

var derivativeKeywords = []string{"derivative", "diff"}

// DerivativeHandler computes first derivatives.
type DerivativeHandler struct {
	base
}

// NewDerivativeHandler creates the derivative handler.
func NewDerivativeHandler(deps Deps) *DerivativeHandler {
	return &DerivativeHandler{base: newBase(deps, "Derivative")}
}

// Route returns classify.Derivative.
func (h *DerivativeHandler) Route() classify.Route { return classify.Derivative }

// Name returns "derivative".
func (h *DerivativeHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the derivative route.
func (h *DerivativeHandler) Description() string {
	return "Compute a first derivative"
}

// Usage returns the derivative syntax.
func (h *DerivativeHandler) Usage() string {
	return "diff(<expression>) | diff(<expression>, <variable>) | d/dx <expression> | derivative <expression>"
}

// HelpInfo returns structured help for the derivative route.
func (h *DerivativeHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "diff(x^3)", Description: "d/dx (x**3) = 3*x**2"},
			{Input: "d/dx sin(x)", Description: "Leibniz prefix; the expression follows the first space"},
			{Input: "diff(x*y, y)", Description: "Differentiate with respect to an explicit variable"},
		},
		Notes: []string{
			"Without an explicit variable the alphabetically first symbol is used",
		},
	}
}

// Handle strips the derivative prefix and differentiates the rest.
func (h *DerivativeHandler) Handle(line string) string {
	f, variable, err := h.target(derivativeBody(line))
	if err != nil {
		return h.fail(line, err)
	}
	res, err := h.deps.backend().Diff(f, variable)
	if err != nil {
		return h.fail(line, err)
	}
	return fmt.Sprintf("d/d%s (%s) = %s", variable, f, res)
}

func (h *DerivativeHandler) fail(line string, err error) string {
	h.logger.Debug("derivative failed", "input", line, "error", err)
	return fmt.Sprintf("Hosila xatosi: %v", err)
}

// derivativeBody returns the expression part of a derivative request.
// For d/d<var> it is the text after the first whitespace run, or the text
// after the d/d<var> token when there is no whitespace.
func derivativeBody(line string) string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToLower(line), "d/d") {
		return stripKeywords(line, derivativeKeywords...)
	}
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return strings.TrimSpace(line[i:])
	}
	rest := line[len("d/d"):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if end < 0 {
		return ""
	}
	return rest[end:]
}
