// Package buildinfo holds version metadata stamped in at link time via
// -ldflags, mirroring the upstream env package's Version/BuildTime/CommitHash
// convention.
package buildinfo

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String renders the three fields as a single line for -version flags.
func String() string {
	return Version + " (commit " + Commit + ", built " + BuildTime + ")"
}
