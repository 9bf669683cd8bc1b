package handlers

import (
	"fmt"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

var integralKeywords = []string{"integral", "integrate", "∫"}

// IntegralHandler computes indefinite integrals.
type IntegralHandler struct {
	base
}

// NewIntegralHandler creates the integral handler.
func NewIntegralHandler(deps Deps) *IntegralHandler {
	return &IntegralHandler{base: newBase(deps, "Integral")}
}

// Route returns classify.Integral.
func (h *IntegralHandler) Route() classify.Route { return classify.Integral }

// Name returns "integral".
func (h *IntegralHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the integral route.
func (h *IntegralHandler) Description() string {
	return "Compute an indefinite integral"
}

// Usage returns the integral syntax.
func (h *IntegralHandler) Usage() string {
	return "integral <expression> [dx] | integrate(<expression>, <variable>) | ∫ <expression>"
}

// HelpInfo returns structured help for the integral route.
func (h *IntegralHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "integral x^2 dx", Description: "∫ (x**2) dx = x**3/3 + C"},
			{Input: "integrate(x*y, y)", Description: "Integrate with respect to an explicit variable"},
			{Input: "∫ cos(x)", Description: "The integral sign works as a keyword"},
		},
		Notes: []string{
			"Without an explicit variable the alphabetically first symbol is used",
			"Constant expressions integrate with respect to the default variable",
		},
	}
}

// Handle strips the integral keywords and integrates the rest.
func (h *IntegralHandler) Handle(line string) string {
	text := stripTrailingDx(stripKeywords(line, integralKeywords...))
	f, variable, err := h.target(text)
	if err != nil {
		return h.fail(line, err)
	}
	res, err := h.deps.backend().Integrate(f, variable)
	if err != nil {
		return h.fail(line, err)
	}
	return fmt.Sprintf("∫ (%s) d%s = %s + C", f, variable, res)
}

func (h *IntegralHandler) fail(line string, err error) string {
	h.logger.Debug("integral failed", "input", line, "error", err)
	return fmt.Sprintf("Integral xatosi: %v", err)
}
