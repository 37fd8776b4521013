// Package version carries build metadata, set through -ldflags -X.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git revision.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)
