package handlers

import (
	"fmt"
	"strings"

	"mathshell/internal/classify"
	"mathshell/internal/normalize"
	"mathshell/pkg/mathtypes"
)

// ExpressionHandler evaluates and simplifies everything no other route
// claims.
type ExpressionHandler struct {
	base
}

// NewExpressionHandler creates the generic expression handler.
func NewExpressionHandler(deps Deps) *ExpressionHandler {
	return &ExpressionHandler{base: newBase(deps, "Expression")}
}

// Route returns classify.Expression.
func (h *ExpressionHandler) Route() classify.Route { return classify.Expression }

// Name returns "expression".
func (h *ExpressionHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the expression route.
func (h *ExpressionHandler) Description() string {
	return "Evaluate, simplify, factor or expand an expression"
}

// Usage returns the expression syntax.
func (h *ExpressionHandler) Usage() string {
	return "<expression> | factor(<expression>) | expand(<expression>) | simplify(<expression>)"
}

// HelpInfo returns structured help for the expression route.
func (h *ExpressionHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "2+3*4", Description: "Exact value, 15-digit approximation and simplified form"},
			{Input: "sqrt(16)", Description: "Roots simplify exactly"},
			{Input: "factor(x^2-4)", Description: "Natija: (x - 2)*(x + 2)"},
		},
		Notes: []string{
			"The approximate value is omitted when free variables remain",
		},
	}
}

// Handle answers a generic expression line.
func (h *ExpressionHandler) Handle(line string) string {
	out, err := h.evaluate(line)
	if err != nil {
		h.logger.Debug("expression failed", "input", line, "error", err)
		return fmt.Sprintf("Xato: %v", err)
	}
	return out
}

func (h *ExpressionHandler) evaluate(line string) (string, error) {
	text := normalize.Normalize(line)
	e, err := h.deps.Parser.ParseNormalized(text)
	if err != nil {
		return "", err
	}
	if hasAnyPrefix(strings.ToLower(text), "factor", "expand", "simplify") {
		return "Natija: " + e.String(), nil
	}

	backend := h.deps.backend()
	lines := []string{"Ifoda: " + e.String()}
	if v, err := backend.Evalf(e); err == nil {
		lines = append(lines, "Taqribiy qiymat: "+v.String())
	} else {
		h.logger.Debug("no numeric value", "input", line, "error", err)
	}
	simplified, err := backend.Simplify(e)
	if err != nil {
		return "", err
	}
	lines = append(lines, "Soddalashtirilgan: "+simplified.String())
	return strings.Join(lines, "\n"), nil
}
