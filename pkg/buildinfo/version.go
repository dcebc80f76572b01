// Package buildinfo exposes the version, commit and build date of seqgram.
//
// The values are injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/seqgram/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/seqgram/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/seqgram/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/seqgram
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the abbreviated git revision.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns a multi-line summary suitable for `seqgram version`.
func String() string {
	return fmt.Sprintf("seqgram %s\ncommit: %s\nbuilt:  %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies seqgram in HTTP responses and Redis client names.
func UserAgent() string {
	return "seqgram/" + Version
}
