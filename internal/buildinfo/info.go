// Package buildinfo carries version metadata injected via ldflags.
package buildinfo

var (
	// Version is the release tag, set at build time.
	Version = "dev"
	// Commit is the short git hash, set at build time.
	Commit = "none"
	// Date is the build timestamp, set at build time.
	Date = "unknown"
)
