// Package version reports the mathshell build. The variables are set at
// link time:
//
//	go build -ldflags "-X mathshell/internal/version.Version=0.2.0 \
//	    -X mathshell/internal/version.Commit=$(git rev-parse HEAD) \
//	    -X mathshell/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const unknown = "unknown"

// Build information injected with -ldflags.
var (
	// Version is the semantic version of the binary.
	Version = "0.1.0"

	// Commit is the git commit the binary was built from.
	Commit = unknown

	// BuildDate is the UTC build time, preferably RFC 3339.
	BuildDate = unknown
)

// Info is the resolved build information.
type Info struct {
	Version   string          `json:"version"`
	Commit    string          `json:"commit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// Get parses Version and returns the build information.
func Get() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   sv.String(),
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		SemVer:    sv,
	}, nil
}

// String returns a one-line summary such as
// "mathshell v0.1.0, commit abc1234, built 2025-01-02".
func String() string {
	info, err := Get()
	if err != nil {
		return fmt.Sprintf("mathshell v%s (invalid version)", Version)
	}

	parts := []string{"mathshell v" + info.Version}
	if known(info.Commit) {
		parts = append(parts, "commit "+shortCommit(info.Commit))
	}
	if known(info.BuildDate) {
		parts = append(parts, "built "+info.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// Detailed returns multi-line build information for `mathshell version
// --verbose`.
func Detailed() string {
	info, err := Get()
	if err != nil {
		return fmt.Sprintf("mathshell v%s (error: %v)", Version, err)
	}

	lines := []string{
		"mathshell v" + info.Version,
		"Commit: " + info.Commit,
		"Build Date: " + info.BuildDate,
	}
	if pre := info.SemVer.Prerelease(); pre != "" {
		lines = append(lines, "Prerelease: "+pre)
	}
	if meta := info.SemVer.Metadata(); meta != "" {
		lines = append(lines, "Build Metadata: "+meta)
	}
	lines = append(lines,
		"Go Version: "+info.GoVersion,
		"Platform: "+info.Platform,
	)
	return strings.Join(lines, "\n")
}

// Validate reports whether Version is a valid semantic version.
func Validate() error {
	_, err := Get()
	return err
}

// IsPrerelease reports whether Version carries a prerelease tag.
func IsPrerelease() bool {
	info, err := Get()
	return err == nil && info.SemVer.Prerelease() != ""
}

// IsDevelopment reports whether the build information was not injected.
func IsDevelopment() bool {
	return !known(Commit) || !known(BuildDate)
}

// Satisfies reports whether Version matches a semver constraint such as
// ">= 0.1, < 1".
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint '%s': %w", constraint, err)
	}
	info, err := Get()
	if err != nil {
		return false, err
	}
	return c.Check(info.SemVer), nil
}

// BuildTime parses BuildDate.
func BuildTime() (time.Time, error) {
	if !known(BuildDate) {
		return time.Time{}, fmt.Errorf("build date not available")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, BuildDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse build date '%s'", BuildDate)
}

// SetBuildInfo overrides the build variables. Tests use it.
func SetBuildInfo(version, commit, buildDate string) {
	Version = version
	Commit = commit
	BuildDate = buildDate
}

func known(s string) bool {
	return s != "" && s != unknown
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
