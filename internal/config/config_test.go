package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory and working directory at fresh
// temporary directories and returns them.
func isolate(t *testing.T) (configDir, workDir string) {
	t.Helper()
	home := t.TempDir()
	workDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	prevDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	configDir = filepath.Join(home, "mathshell")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	return configDir, workDir
}

// unsetForTest removes key from the environment and restores it when the
// test ends.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	configDir, _ := isolate(t)

	cfg, err := Load(New())
	require.NoError(t, err)

	want := Default()
	want.HistoryFile = filepath.Join(configDir, "history")
	assert.Equal(t, want, cfg)
}

func TestLoad_TestModeHasNoHistory(t *testing.T) {
	isolate(t)
	v := New()
	v.Set(KeyTestMode, true)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.True(t, cfg.TestMode)
	assert.Empty(t, cfg.HistoryFile)
}

func TestLoad_Priority(t *testing.T) {
	configDir, _ := isolate(t)
	yaml := `prompt: "calc> "
default_variable: t
plot:
  width: 80
  height: 20
  x_min: -5
  x_max: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yaml), 0644))

	t.Run("config file", func(t *testing.T) {
		cfg, err := Load(New())
		require.NoError(t, err)
		assert.Equal(t, "calc> ", cfg.Prompt)
		assert.Equal(t, "t", cfg.DefaultVariable)
		assert.Equal(t, Plot{Enabled: true, Width: 80, Height: 20, XMin: -5, XMax: 5}, cfg.Plot)
	})

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("MATHSHELL_PLOT_WIDTH", "40")
		t.Setenv("MATHSHELL_LOG_LEVEL", "debug")
		cfg, err := Load(New())
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Plot.Width)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("MATHSHELL_DEFAULT_VARIABLE", "y")
		v := New()
		v.Set(KeyDefaultVariable, "z")
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "z", cfg.DefaultVariable)
	})
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	_, workDir := isolate(t)
	path := filepath.Join(workDir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: plain\nplot:\n  enabled: false\n"), 0644))

	v := New()
	v.Set(KeyConfigFile, path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Theme)
	assert.False(t, cfg.Plot.Enabled)

	v = New()
	v.Set(KeyConfigFile, filepath.Join(workDir, "missing.yaml"))
	_, err = Load(v)
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	_, workDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("MATHSHELL_PROMPT=env> \n"), 0644))

	t.Run("skipped in test mode", func(t *testing.T) {
		unsetForTest(t, "MATHSHELL_PROMPT")
		v := New()
		v.Set(KeyTestMode, true)
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, ">>> ", cfg.Prompt)
	})

	t.Run("loaded otherwise", func(t *testing.T) {
		unsetForTest(t, "MATHSHELL_PROMPT")
		cfg, err := Load(New())
		require.NoError(t, err)
		assert.Equal(t, "env>", cfg.Prompt)
	})

	t.Run("existing environment wins", func(t *testing.T) {
		t.Setenv("MATHSHELL_PROMPT", "set> ")
		cfg, err := Load(New())
		require.NoError(t, err)
		assert.Equal(t, "set> ", cfg.Prompt)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"numeric variable", KeyDefaultVariable, "1x"},
		{"empty variable", KeyDefaultVariable, " "},
		{"operator variable", KeyDefaultVariable, "x+y"},
		{"narrow plot", "plot.width", 1},
		{"flat plot", "plot.height", 0},
		{"empty range", "plot.x_max", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			v := New()
			v.Set(KeyTestMode, true)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"x", true},
		{"theta", true},
		{"x_1", true},
		{"_t", true},
		{"θ", true},
		{"", false},
		{"2x", false},
		{"x-y", false},
		{"x y", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifier(tt.in))
		})
	}
}
