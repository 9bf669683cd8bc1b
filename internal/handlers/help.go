package handlers

import (
	"strings"

	"mathshell/internal/classify"
	"mathshell/pkg/mathtypes"
)

// HelpText is the static usage text.
const HelpText = `--- QO'LLANMA ---
1. Hisoblash: 2+2, 5^2, sqrt(16)
2. Tenglama: x^2 - 9 = 0
3. Integral: integral x^2
4. Hosila: diff(x^3) yoki d/dx sin(x)
5. Limit: limit(sin(x)/x, x, 0)
6. Grafik: plot x^2
7. Chiqish: exit
-----------------`

// HelpHandler prints the usage text. It never calls the backend.
type HelpHandler struct{}

// NewHelpHandler creates the help handler.
func NewHelpHandler() *HelpHandler { return &HelpHandler{} }

// Route returns classify.Help.
func (h *HelpHandler) Route() classify.Route { return classify.Help }

// Name returns "help".
func (h *HelpHandler) Name() string { return h.Route().String() }

// Description returns a brief description of the help route.
func (h *HelpHandler) Description() string { return "Show the usage text" }

// Usage returns "help".
func (h *HelpHandler) Usage() string { return "help" }

// HelpInfo returns structured help for the help route.
func (h *HelpHandler) HelpInfo() mathtypes.HelpInfo {
	return mathtypes.HelpInfo{
		Route:       h.Name(),
		Description: h.Description(),
		Usage:       h.Usage(),
		Examples:    []mathtypes.HelpExample{{Input: "help", Description: "Print the numbered list of commands"}},
	}
}

// Handle returns HelpText.
func (h *HelpHandler) Handle(string) string { return HelpText }

// Markdown returns HelpText as a markdown heading and numbered list.
func (h *HelpHandler) Markdown() string {
	lines := strings.Split(HelpText, "\n")
	var b strings.Builder
	b.WriteString("## " + strings.Trim(lines[0], "- ") + "\n\n")
	for _, l := range lines[1 : len(lines)-1] {
		num, rest, _ := strings.Cut(l, " ")
		label, example, _ := strings.Cut(rest, ": ")
		b.WriteString(num + " **" + label + "**: `" + example + "`\n")
	}
	return b.String()
}
