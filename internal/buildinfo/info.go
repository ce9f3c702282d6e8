// Package buildinfo carries release metadata, stamped at build time with
// -ldflags "-X github.com/cleared-dev/auditsim/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
