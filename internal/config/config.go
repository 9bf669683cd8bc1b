// Package config loads mathshell settings from defaults, an optional
// config.yaml, .env files, MATHSHELL_* environment variables and command
// line flags, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable mathshell reads.
const EnvPrefix = "MATHSHELL"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings for one run.
type Config struct {
	DefaultVariable string `mapstructure:"default_variable"`
	Prompt          string `mapstructure:"prompt"`
	Theme           string `mapstructure:"theme"`
	HistoryFile     string `mapstructure:"history_file"`
	Plot            Plot   `mapstructure:"plot"`
	Log             Log    `mapstructure:"log"`
	TestMode        bool   `mapstructure:"test_mode"`
}

// Plot configures the terminal plotter.
type Plot struct {
	Enabled bool    `mapstructure:"enabled"`
	Width   int     `mapstructure:"width"`
	Height  int     `mapstructure:"height"`
	XMin    float64 `mapstructure:"x_min"`
	XMax    float64 `mapstructure:"x_max"`
}

// Log configures the package logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Keys bound to command line flags.
const (
	KeyConfigFile      = "config"
	KeyDefaultVariable = "default_variable"
	KeyTheme           = "theme"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyTestMode        = "test_mode"
)

// New returns a viper instance with every default registered and the
// environment bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDefaultVariable, "x")
	v.SetDefault("prompt", ">>> ")
	v.SetDefault(KeyTheme, "default")
	v.SetDefault("history_file", "")
	v.SetDefault("plot.enabled", true)
	v.SetDefault("plot.width", 60)
	v.SetDefault("plot.height", 15)
	v.SetDefault("plot.x_min", -10.0)
	v.SetDefault("plot.x_max", 10.0)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyConfigFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Dir returns the mathshell configuration directory:
// $XDG_CONFIG_HOME/mathshell, or the platform user config dir.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mathshell"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "mathshell"), nil
}

// Load resolves the configuration held by v. Outside test mode the .env
// files in the working directory and the config directory are loaded into
// the process environment first; variables already set are kept, and the
// working directory file wins over the config directory one.
func Load(v *viper.Viper) (*Config, error) {
	dir, dirErr := Dir()
	testMode := v.GetBool(KeyTestMode)

	if !testMode {
		loadDotEnv(".env")
		if dirErr == nil {
			loadDotEnv(filepath.Join(dir, ".env"))
		}
	}

	if err := readConfigFile(v, dir, dirErr == nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.DefaultVariable = strings.TrimSpace(cfg.DefaultVariable)
	if cfg.HistoryFile == "" && dirErr == nil && !cfg.TestMode {
		cfg.HistoryFile = filepath.Join(dir, "history")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	return &Config{
		DefaultVariable: "x",
		Prompt:          ">>> ",
		Theme:           "default",
		Plot:            Plot{Enabled: true, Width: 60, Height: 15, XMin: -10, XMax: 10},
	}
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	// A malformed .env file is ignored like a missing one.
	_ = godotenv.Load(path)
}

func readConfigFile(v *viper.Viper, dir string, haveDir bool) error {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if haveDir {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate checks the values a handler or the plotter depends on.
func (c *Config) Validate() error {
	if !IsIdentifier(c.DefaultVariable) {
		return fmt.Errorf("%w: default_variable %q is not an identifier", ErrInvalid, c.DefaultVariable)
	}
	if c.Plot.Width <= 1 {
		return fmt.Errorf("%w: plot.width must be greater than 1, got %d", ErrInvalid, c.Plot.Width)
	}
	if c.Plot.Height <= 0 {
		return fmt.Errorf("%w: plot.height must be positive, got %d", ErrInvalid, c.Plot.Height)
	}
	if c.Plot.XMin >= c.Plot.XMax {
		return fmt.Errorf("%w: plot.x_min (%g) must be less than plot.x_max (%g)", ErrInvalid, c.Plot.XMin, c.Plot.XMax)
	}
	return nil
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
