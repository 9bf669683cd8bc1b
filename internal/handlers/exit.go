package handlers

import (
	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

// Farewell is printed when the user leaves with exit or quit.
const Farewell = "Dastur tugatildi."

// ExitHandler answers exit and quit. The loop terminates after printing
// its reply.
type ExitHandler struct{}

// NewExitHandler creates the exit handler.
func NewExitHandler() *ExitHandler { return &ExitHandler{} }

// Route returns classify.Exit.
func (h *ExitHandler) Route() classify.Route { return classify.Exit }

// Name returns "exit".
func (h *ExitHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the exit route.
func (h *ExitHandler) Description() string { return "Leave the shell" }

// Usage returns the exit syntax.
func (h *ExitHandler) Usage() string { return "exit | quit" }

// HelpInfo returns structured help for the exit route.
func (h *ExitHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples:    []mathtypes.HelpExample{{Input: "exit", Description: "Print the farewell and stop"}},
		Notes:       []string{"Ctrl+C also stops the shell"},
	}
}

// Handle returns Farewell.
func (h *ExitHandler) Handle(string) string { return Farewell }
