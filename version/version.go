// Package version holds build metadata populated via ldflags at release
// time.
package version

import "runtime"

// Populated with -ldflags "-X github.com/ebiblegr/verselink/version.GitRelease=..."
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
	GoInfo        = runtime.Version()
)
