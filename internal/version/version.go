// Package version reports the version of the running binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jzelinskie/cobrautil/v2"
	"golang.org/x/mod/semver"
)

// CurrentVersion returns the current version of the binary.
func CurrentVersion() (string, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", fmt.Errorf("failed to read BuildInfo because the program was compiled with Go %s", runtime.Version())
	}

	return cobrautil.VersionWithFallbacks(bi), nil
}

// IsReleased returns true if the version is a valid semantic version without
// a prerelease suffix.
func IsReleased(version string) bool {
	return semver.IsValid(version) && semver.Prerelease(version) == ""
}

// UsageVersion returns a human readable version string, optionally followed by
// the versions of every module the binary was built with.
func UsageVersion(programName string, includeDeps bool) string {
	version, err := CurrentVersion()
	if err != nil {
		return programName + " (unknown version)"
	}

	if !IsReleased(version) {
		version += " (unreleased)"
	}
	usage := programName + " " + version

	if !includeDeps {
		return usage
	}

	bi, _ := debug.ReadBuildInfo()
	var sb strings.Builder
	sb.WriteString(usage)
	for _, dep := range bi.Deps {
		fmt.Fprintf(&sb, "\n  %s %s", dep.Path, dep.Version)
	}
	return sb.String()
}
