package mathtypes

// ThemeConfig represents a theme configuration loaded from YAML.
type ThemeConfig struct {
	// Name is the theme identifier (e.g., "default", "dark", "light", "plain")
	Name string `yaml:"name" json:"name"`

	// Description provides a brief description of the theme
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Type selects the markdown style: "dark", "light" or "auto"
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// Styles contains the style definitions for the semantic elements
	Styles ThemeStyles `yaml:"styles" json:"styles"`
}

// ThemeStyles defines the styling for each semantic element of the output.
type ThemeStyles struct {
	Banner    StyleConfig `yaml:"banner" json:"banner"`
	Prompt    StyleConfig `yaml:"prompt" json:"prompt"`
	Label     StyleConfig `yaml:"label" json:"label"`
	Result    StyleConfig `yaml:"result" json:"result"`
	Success   StyleConfig `yaml:"success" json:"success"`
	Error     StyleConfig `yaml:"error" json:"error"`
	Warning   StyleConfig `yaml:"warning" json:"warning"`
	Info      StyleConfig `yaml:"info" json:"info"`
	Highlight StyleConfig `yaml:"highlight" json:"highlight"`
	Bold      StyleConfig `yaml:"bold" json:"bold"`
	Italic    StyleConfig `yaml:"italic" json:"italic"`
	Chart     StyleConfig `yaml:"chart" json:"chart"`
}

// StyleConfig defines the visual styling for a semantic element.
// Colors may be a plain string or a {light, dark} adaptive color object.
type StyleConfig struct {
	Foreground    interface{} `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background    interface{} `yaml:"background,omitempty" json:"background,omitempty"`
	Bold          *bool       `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic        *bool       `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline     *bool       `yaml:"underline,omitempty" json:"underline,omitempty"`
	Strikethrough *bool       `yaml:"strikethrough,omitempty" json:"strikethrough,omitempty"`
}
