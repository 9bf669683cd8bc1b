package version

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, Commit, BuildDate
	SetBuildInfo(version, commit, date)
	t.Cleanup(func() { SetBuildInfo(oldVersion, oldCommit, oldDate) })
}

func TestDefaultVersionIsValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"development", "0.1.0", "unknown", "unknown", "mathshell v0.1.0"},
		{"release", "1.2.3", "abcdef0123456", "2025-01-02", "mathshell v1.2.3, commit abcdef0, built 2025-01-02"},
		{"short commit", "1.2.3", "abc", "", "mathshell v1.2.3, commit abc"},
		{"v prefix", "v2.0.0", "unknown", "unknown", "mathshell v2.0.0"},
		{"invalid", "not-a-version", "unknown", "unknown", "mathshell vnot-a-version (invalid version)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			assert.Equal(t, tt.want, String())
		})
	}
}

func TestDetailed(t *testing.T) {
	withBuildInfo(t, "1.0.0-beta.1+42.abc", "abc", "2025-01-02T03:04:05Z")
	out := Detailed()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "mathshell v1.0.0-beta.1+42.abc", lines[0])
	assert.Contains(t, out, "Prerelease: beta.1")
	assert.Contains(t, out, "Build Metadata: 42.abc")
	assert.Contains(t, out, "Go Version: go")

	withBuildInfo(t, "x", "", "")
	assert.Contains(t, Detailed(), "error:")
}

func TestPrereleaseAndDevelopment(t *testing.T) {
	withBuildInfo(t, "0.3.0-rc.1", "unknown", "2025-01-02")
	assert.True(t, IsPrerelease())
	assert.True(t, IsDevelopment())

	withBuildInfo(t, "0.3.0", "abc", "2025-01-02")
	assert.False(t, IsPrerelease())
	assert.False(t, IsDevelopment())
}

func TestSatisfies(t *testing.T) {
	withBuildInfo(t, "0.4.2", "abc", "2025-01-02")

	ok, err := Satisfies(">= 0.4, < 1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Satisfies("^1.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Satisfies("not a constraint")
	assert.Error(t, err)
}

func TestBuildTime(t *testing.T) {
	tests := []struct {
		date    string
		want    time.Time
		wantErr bool
	}{
		{"2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), false},
		{"2025-01-02 03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), false},
		{"2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"unknown", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			withBuildInfo(t, "0.1.0", "abc", tt.date)
			got, err := BuildTime()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
