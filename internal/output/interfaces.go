// Package output writes mathshell's console output. A Printer renders
// text by semantic type: plain and test modes print verbatim, styled mode
// asks a StyleProvider for a style per type, and JSON mode emits one
// object per write.
package output

// StyleProvider supplies styles for semantic types. internal/theme
// implements it; the output package depends only on this interface.
type StyleProvider interface {
	// GetStyle returns the style for a semantic type such as "label" or
	// "error". Unknown types get an unstyled TextStyle.
	GetStyle(semantic string) TextStyle

	// IsAvailable reports whether the provider can style text.
	IsAvailable() bool

	// GetThemeType returns "dark", "light" or "auto" for markdown rendering.
	GetThemeType() string
}

// TextStyle renders text. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(text string) string
}

// Mode defines the output mode a printer operates in.
type Mode int

const (
	// ModeAuto styles output only when the writer supports colour.
	ModeAuto Mode = iota

	// ModeStyled forces styled output.
	ModeStyled

	// ModePlain writes text verbatim.
	ModePlain

	// ModeJSON writes one JSON object per output call.
	ModeJSON
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeStyled:
		return "styled"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// SemanticType is the meaning of a piece of output.
type SemanticType string

const (
	// SemanticPlain is text without semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticBanner is the greeting printed when the loop starts.
	SemanticBanner SemanticType = "banner"
	// SemanticPrompt is the input prompt.
	SemanticPrompt SemanticType = "prompt"
	// SemanticLabel is the label of a "Label: value" result line.
	SemanticLabel SemanticType = "label"
	// SemanticResult is a computed value.
	SemanticResult SemanticType = "result"
	// SemanticSuccess is a completion message.
	SemanticSuccess SemanticType = "success"
	// SemanticError is an error message.
	SemanticError SemanticType = "error"
	// SemanticWarning is a warning.
	SemanticWarning SemanticType = "warning"
	// SemanticInfo is a progress or status message.
	SemanticInfo SemanticType = "info"
	// SemanticHighlight is emphasized text.
	SemanticHighlight SemanticType = "highlight"
	// SemanticBold is bold text.
	SemanticBold SemanticType = "bold"
	// SemanticItalic is italic text.
	SemanticItalic SemanticType = "italic"
	// SemanticChart is a rendered chart.
	SemanticChart SemanticType = "chart"
	// SemanticMarkdown is rendered markdown.
	SemanticMarkdown SemanticType = "markdown"
)
