package handlers

import (
	"fmt"
	"strings"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

// EquationHandler solves lhs = rhs, or checks it when both sides are
// constant.
type EquationHandler struct {
	base
}

// NewEquationHandler creates the equation handler.
func NewEquationHandler(deps Deps) *EquationHandler {
	return &EquationHandler{base: newBase(deps, "Equation")}
}

// Route returns classify.Equation.
func (h *EquationHandler) Route() classify.Route { return classify.Equation }

// Name returns "equation".
func (h *EquationHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the equation route.
func (h *EquationHandler) Description() string {
	return "Solve an equation over the complex numbers, or check a constant one"
}

// Usage returns the equation syntax.
func (h *EquationHandler) Usage() string { return "<expression> = <expression>" }

// HelpInfo returns structured help for the equation route.
func (h *EquationHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "x^2 - 9 = 0", Description: "Solve for x: {-3, 3}"},
			{Input: "x^2 + 1 = 0", Description: "Complex roots: {-I, I}"},
			{Input: "2+2=4", Description: "No variables, so the equality is checked"},
		},
		Notes: []string{
			"The line is split on the first '='",
			"With several variables the alphabetically first one is solved for",
			"Identities print Complexes and contradictions print EmptySet",
		},
	}
}

// Handle splits the line on its first "=" and answers it.
func (h *EquationHandler) Handle(line string) string {
	out, err := h.solve(line)
	if err != nil {
		h.logger.Debug("equation failed", "input", line, "error", err)
		return fmt.Sprintf("Tenglamada xato: %v", err)
	}
	return out
}

func (h *EquationHandler) solve(line string) (string, error) {
	left, right, found := strings.Cut(line, "=")
	if !found {
		return "", fmt.Errorf("no '=' in %q: %w", line, mathtypes.ErrParse)
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)

	lhs, err := h.deps.Parser.Parse(left)
	if err != nil {
		return "", err
	}
	rhs, err := h.deps.Parser.Parse(right)
	if err != nil {
		return "", err
	}

	backend := h.deps.backend()
	vars := unionSymbols(backend.FreeSymbols(lhs), backend.FreeSymbols(rhs))
	header := fmt.Sprintf("Tenglama: %s = %s", left, right)

	if len(vars) == 0 {
		equal, err := backend.Equals(lhs, rhs)
		if err != nil {
			return "", err
		}
		verdict := "Noto'g'ri"
		if equal {
			verdict = "To'g'ri"
		}
		return header + "\nNatija: " + verdict, nil
	}

	variable := vars[0]
	solution, err := backend.Solve(lhs, rhs, variable)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\nO'zgaruvchi: %s\nYechim: %s", header, variable, solution), nil
}
