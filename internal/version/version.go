// Package version holds build metadata for the assist binary, injected via
// ldflags by the release pipeline.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata in one line for startup logs.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
