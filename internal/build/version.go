// Package build provides version and build information for tasknotify.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "runtime"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// UserAgent identifies tasknotify in outgoing HTTP requests.
func UserAgent() string {
	return "tasknotify/" + Version + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
