// Package version holds the build version string.
package version

// Version is the current repolens version.
// Overridden at build time via -ldflags "-X repolens/internal/version.Version=...".
var Version = "0.3.0"
