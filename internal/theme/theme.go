// Package theme turns YAML theme files into lipgloss styles for the
// output printer. The default, dark, light and plain themes are embedded;
// a path to a YAML file with the same layout loads a custom theme.
package theme

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"mathshell/internal/logger"
	"mathshell/internal/output"
	"mathshell/pkg/mathtypes"
)

//go:embed themes/*.yaml
var themeFiles embed.FS

// Plain is the name of the theme that disables styling.
const Plain = "plain"

// Theme holds one lipgloss style per semantic output type.
// It implements output.StyleProvider.
type Theme struct {
	Name        string
	Description string
	Type        string
	styles      map[output.SemanticType]lipgloss.Style
}

var _ output.StyleProvider = (*Theme)(nil)

// Names returns the embedded theme names in sorted order.
func Names() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load returns the named embedded theme, or the theme in the YAML file
// at name when name ends in .yaml or .yml.
func Load(name string) (*Theme, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		normalized = Plain
	}

	var data []byte
	var err error
	if ext := path.Ext(normalized); ext == ".yaml" || ext == ".yml" {
		data, err = os.ReadFile(strings.TrimSpace(name))
	} else {
		data, err = themeFiles.ReadFile("themes/" + normalized + ".yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("theme %q not found: %w", name, err)
	}
	return Parse(data)
}

// Get returns the named theme. Unknown or broken themes fall back to
// plain.
func Get(name string) *Theme {
	t, err := Load(name)
	if err != nil {
		logger.Debug("Invalid theme requested, using plain theme", "theme", name, "error", err, "available", Names())
		return fallback()
	}
	return t
}

// Parse decodes a theme file.
func Parse(data []byte) (*Theme, error) {
	var cfg mathtypes.ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("theme file has no name")
	}
	switch cfg.Type {
	case "":
		cfg.Type = "auto"
	case "auto", "dark", "light":
	default:
		return nil, fmt.Errorf("theme %s: unknown type %q", cfg.Name, cfg.Type)
	}
	return fromConfig(&cfg), nil
}

func fromConfig(cfg *mathtypes.ThemeConfig) *Theme {
	s := cfg.Styles
	return &Theme{
		Name:        cfg.Name,
		Description: cfg.Description,
		Type:        cfg.Type,
		styles: map[output.SemanticType]lipgloss.Style{
			output.SemanticBanner:    createStyle(s.Banner),
			output.SemanticPrompt:    createStyle(s.Prompt),
			output.SemanticLabel:     createStyle(s.Label),
			output.SemanticResult:    createStyle(s.Result),
			output.SemanticSuccess:   createStyle(s.Success),
			output.SemanticError:     createStyle(s.Error),
			output.SemanticWarning:   createStyle(s.Warning),
			output.SemanticInfo:      createStyle(s.Info),
			output.SemanticHighlight: createStyle(s.Highlight),
			output.SemanticBold:      createStyle(s.Bold),
			output.SemanticItalic:    createStyle(s.Italic),
			output.SemanticChart:     createStyle(s.Chart),
		},
	}
}

func createStyle(config mathtypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	if config.Foreground != nil {
		if color := parseColor(config.Foreground); color != nil {
			style = style.Foreground(color)
		}
	}
	if config.Background != nil {
		if color := parseColor(config.Background); color != nil {
			style = style.Background(color)
		}
	}

	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	if config.Strikethrough != nil && *config.Strikethrough {
		style = style.Strikethrough(true)
	}
	return style
}

// parseColor accepts "#RRGGBB", an ANSI number, or a {light, dark} map.
func parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case int:
		return lipgloss.Color(fmt.Sprint(v))
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}

func fallback() *Theme {
	return &Theme{Name: Plain, Type: "auto", styles: map[output.SemanticType]lipgloss.Style{}}
}

// Style returns the lipgloss style for a semantic type.
func (t *Theme) Style(semantic output.SemanticType) lipgloss.Style {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// GetStyle implements output.StyleProvider. Unknown types are unstyled.
func (t *Theme) GetStyle(semantic string) output.TextStyle {
	return textStyle{t.Style(output.SemanticType(semantic))}
}

// textStyle narrows lipgloss's variadic Render to output.TextStyle.
type textStyle struct {
	style lipgloss.Style
}

func (s textStyle) Render(text string) string {
	return s.style.Render(text)
}

// IsAvailable implements output.StyleProvider. The plain theme reports
// false so printers stay verbatim.
func (t *Theme) IsAvailable() bool {
	return t != nil && t.Name != Plain
}

// GetThemeType implements output.StyleProvider.
func (t *Theme) GetThemeType() string {
	return t.Type
}
