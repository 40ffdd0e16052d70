// Package version holds build information injected at link time:
//
//	-ldflags "-X ghrepo/internal/version.version=v1.0.0 -X ghrepo/internal/version.commit=abc123 -X ghrepo/internal/version.buildTime=2025-01-01T00:00:00Z"
package version

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

// Set via ldflags during build.
//
//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string
)

// ApplicationName is the name displayed in version output.
const ApplicationName = "ghrepo"

// Defaults used when build information is not injected.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// VersionInfo is the build information of the running binary.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// GetVersion returns the current build information with defaults applied.
func GetVersion() *VersionInfo {
	return &VersionInfo{
		Version:   withDefault(version, DefaultVersion),
		Commit:    withDefault(commit, DefaultCommit),
		BuildTime: withDefault(buildTime, DefaultBuildTime),
		GoVersion: runtime.Version(),
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// FormatShort returns only the version number.
func (vi *VersionInfo) FormatShort() string {
	return vi.Version
}

// FormatFull returns the multi-line version report.
func (vi *VersionInfo) FormatFull() string {
	var b strings.Builder
	b.WriteString(ApplicationName + "\n")
	fmt.Fprintf(&b, "Version: %s\n", vi.Version)
	fmt.Fprintf(&b, "Commit: %s\n", vi.Commit)
	fmt.Fprintf(&b, "Built: %s\n", vi.displayBuildTime())
	fmt.Fprintf(&b, "Go: %s\n", vi.GoVersion)
	return b.String()
}

// Write writes the short or full format to w.
func (vi *VersionInfo) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, vi.FormatShort())
		return err
	}
	_, err := fmt.Fprint(w, vi.FormatFull())
	return err
}

// BuiltAt parses the build time. It returns the zero time when unknown or unparsable.
func (vi *VersionInfo) BuiltAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, vi.BuildTime); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// displayBuildTime normalizes parsable build times to RFC3339 in UTC.
func (vi *VersionInfo) displayBuildTime() string {
	if builtAt := vi.BuiltAt(); !builtAt.IsZero() {
		return builtAt.UTC().Format(time.RFC3339)
	}
	return vi.BuildTime
}

// SetBuildVars sets the build variables. It is meant for tests.
func SetBuildVars(ver, com, bt string) {
	version = ver
	commit = com
	buildTime = bt
}

// ResetBuildVars clears the build variables. It is meant for tests.
func ResetBuildVars() {
	SetBuildVars("", "", "")
}
