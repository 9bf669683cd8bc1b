package output

import (
	"errors"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal with glamour.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer builds a renderer matching the provider's theme
// type. It falls back to glamour's auto style, then to the dark style.
// If every attempt fails Render returns an error and callers print the
// plain fallback.
func NewMarkdownRenderer(styleProvider StyleProvider) *MarkdownRenderer {
	themeStyle := "auto"
	if styleProvider != nil && styleProvider.IsAvailable() {
		themeStyle = styleProvider.GetThemeType()
	}

	var renderer *glamour.TermRenderer
	var err error
	if themeStyle != "" && themeStyle != "auto" {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(themeStyle),
			glamour.WithWordWrap(80),
		)
	}
	if renderer == nil || err != nil {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
			glamour.WithEnvironmentConfig(),
		)
	}
	if err != nil {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			renderer = nil
		}
	}
	return &MarkdownRenderer{renderer: renderer}
}

// Render returns md rendered for the terminal, without surrounding blank
// lines.
func (m *MarkdownRenderer) Render(md string) (string, error) {
	if m.renderer == nil {
		return "", errNoRenderer
	}
	rendered, err := m.renderer.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(rendered, "\n"), nil
}

var errNoRenderer = errors.New("markdown renderer unavailable")
