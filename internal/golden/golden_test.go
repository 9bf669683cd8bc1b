package golden

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathshell/internal/app"
	"mathshell/internal/config"
	"mathshell/internal/testutils"
)

func appSession(ctx context.Context, script io.Reader, out io.Writer) error {
	cfg := config.Default()
	cfg.TestMode = true
	return app.New(cfg, out).RunScript(ctx, script)
}

func echoSession(ctx context.Context, script io.Reader, out io.Writer) error {
	_, err := io.Copy(out, script)
	return err
}

func TestRunner_CheckDir(t *testing.T) {
	results, err := NewRunner(appSession).CheckDir(context.Background(), "testdata")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, res := range results {
		assert.True(t, res.Passed(), "%s:\n%s", res.Script, res.Diff)
	}
}

func TestRunner_RecordThenCheck(t *testing.T) {
	script := testutils.CreateTempFile(t, "echo.math", "hello  \n\x1b[31mred\x1b[0m\n\n")

	r := NewRunner(echoSession)
	path, err := r.Record(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(script), "echo.expected"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\nred\n", string(content))

	res, err := r.Check(context.Background(), script)
	require.NoError(t, err)
	assert.True(t, res.Passed())

	require.NoError(t, os.WriteFile(path, []byte("hello\nblue\n"), 0644))
	res, err = r.Check(context.Background(), script)
	require.NoError(t, err)
	assert.False(t, res.Passed())
	assert.Contains(t, res.Diff, "- blue")
	assert.Contains(t, res.Diff, "+ red")
}

func TestRunner_Errors(t *testing.T) {
	r := NewRunner(echoSession)

	_, err := r.Check(context.Background(), filepath.Join(t.TempDir(), "missing.math"))
	assert.ErrorContains(t, err, "failed to open script")

	script := testutils.CreateTempFile(t, "lonely.math", testutils.Script("x"))
	_, err = r.Check(context.Background(), script)
	assert.ErrorContains(t, err, "failed to read expected file")
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "a\nb", "a\nb"},
		{"trailing spaces", "a  \nb\t", "a\nb"},
		{"crlf", "a\r\nb\r\n", "a\nb"},
		{"ansi", "\x1b[1;32mNatija:\x1b[0m 2", "Natija: 2"},
		{"trailing newlines", "a\n\n\n", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("same", "same"))

	d := Diff("a\nb\nc", "a\nx\nc")
	assert.True(t, strings.HasPrefix(d, "--- Expected ---\n"))
	assert.Contains(t, d, "   2| b")
	assert.Contains(t, d, "- b")
	assert.Contains(t, d, "+ x")
	assert.Contains(t, d, "  a")
}

func TestExpectedPath(t *testing.T) {
	assert.Equal(t, "dir/basic.expected", ExpectedPath("dir/basic.math"))
	assert.Equal(t, "noext.expected", ExpectedPath("noext"))
}
