package handlers

import (
	"errors"
	"fmt"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

// LimitHint is the only failure message users see from the limit route.
const LimitHint = "Limit formati xato. To'g'ri format: limit(sin(x)/x, x, 0)"

// LimitHandler evaluates limit(f, x, point[, dir]) expressions.
type LimitHandler struct {
	base
}

// NewLimitHandler creates the limit handler.
func NewLimitHandler(deps Deps) *LimitHandler {
	return &LimitHandler{base: newBase(deps, "Limit")}
}

// Route returns classify.Limit.
func (h *LimitHandler) Route() classify.Route { return classify.Limit }

// Name returns "limit".
func (h *LimitHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the limit route.
func (h *LimitHandler) Description() string {
	return "Evaluate a limit"
}

// Usage returns the limit syntax.
func (h *LimitHandler) Usage() string {
	return "limit(<expression>, <variable>, <point>[, '+'|'-'])"
}

// HelpInfo returns structured help for the limit route.
func (h *LimitHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples: []mathtypes.HelpExample{
			{Input: "limit(sin(x)/x, x, 0)", Description: "Limit natijasi: 1"},
			{Input: "limit(1/x, x, oo)", Description: "Limits at infinity use oo or -oo"},
			{Input: "limit(1/x, x, 0, '-')", Description: "One-sided limit from the left"},
		},
		Notes: []string{
			"The direction defaults to '+'",
			"Any failure prints the format hint",
		},
	}
}

// Handle evaluates the line. Failures print LimitHint; the typed error is
// logged at debug level.
func (h *LimitHandler) Handle(line string) string {
	res, err := h.Evaluate(line)
	if err != nil {
		h.logger.Debug("limit failed", "input", line, "error", err)
		return LimitHint
	}
	return "Limit natijasi: " + res
}

// Evaluate parses the whole line and forces every limit in it. Parse
// failures unwrap to mathtypes.ErrParse and everything else, including a
// line without a limit, to mathtypes.ErrEvaluation.
func (h *LimitHandler) Evaluate(line string) (string, error) {
	e, err := h.deps.Parser.Parse(line)
	if err != nil {
		return "", err
	}
	res, err := h.deps.backend().Doit(e)
	if err != nil {
		if !errors.Is(err, mathtypes.ErrEvaluation) {
			err = fmt.Errorf("%w: %w", mathtypes.ErrEvaluation, err)
		}
		return "", err
	}
	if res.String() == e.String() {
		return "", fmt.Errorf("no limit to evaluate in %s: %w", e, mathtypes.ErrEvaluation)
	}
	return res.String(), nil
}
