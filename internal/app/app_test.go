package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathshell/internal/config"
	"mathshell/internal/handlers"
	"mathshell/internal/output"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.TestMode = true
	return cfg
}

func TestApp_RunScript(t *testing.T) {
	var out bytes.Buffer
	a := New(testConfig(), &out)

	script := "# comment\n\nsimplify(1+1)\nexit\n2+2\n"
	require.NoError(t, a.RunScript(context.Background(), strings.NewReader(script)))
	assert.Equal(t, "=== Matematik Yechuvchi ===\n"+
		"Buyruqni kiritib Enter bosing (Yordam uchun: help)\n"+
		">>> simplify(1+1)\n"+
		"Natija: 2\n"+
		">>> exit\n"+
		"Dastur tugatildi.\n", out.String())
}

func TestApp_Eval(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	cfg.DefaultVariable = "t"
	a := New(cfg, &out)

	a.Eval("integral 5")
	assert.Equal(t, "∫ (5) dt = 5*t + C\n", out.String())
}

func TestApp_Plot(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		var out bytes.Buffer
		cfg := testConfig()
		cfg.Plot.Width, cfg.Plot.Height = 20, 4
		New(cfg, &out).Eval("plot x^2")

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		require.Greater(t, len(lines), 3)
		assert.Equal(t, "Grafik chizilmoqda: x**2 ...", lines[0])
		assert.Contains(t, out.String(), "┤")
		assert.Equal(t, "Grafik yakunlandi.", lines[len(lines)-1])
	})

	t.Run("disabled", func(t *testing.T) {
		var out bytes.Buffer
		cfg := testConfig()
		cfg.Plot.Enabled = false
		New(cfg, &out).Eval("plot x^2")
		assert.Equal(t, "Grafik chizilmoqda: x**2 ...\n"+handlers.PlotUnavailable+"\n", out.String())
	})
}

func TestApp_PrinterMode(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, output.ModePlain, New(testConfig(), &out).Printer.Mode())

	cfg := config.Default()
	cfg.Theme = "dark"
	t.Setenv("CLICOLOR_FORCE", "1")
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, output.ModeStyled, New(cfg, &out).Printer.Mode())

	cfg.Theme = "plain"
	assert.Equal(t, output.ModePlain, New(cfg, &out).Printer.Mode())
}
