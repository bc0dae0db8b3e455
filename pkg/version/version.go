// Package version holds the build version, overridable at link time.
package version

// Version is set via -ldflags "-X github.com/epmk/buildgate/pkg/version.Version=..."
var Version = "dev"
