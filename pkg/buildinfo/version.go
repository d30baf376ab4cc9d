// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// InteropVersion is the version of the interop layer (environment resolution,
// manifest codecs, audit normalization). It is embedded in every canonical
// package file and bumped whenever the translation behavior changes.
const InteropVersion = "1.0.0"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ninterop: %s", Version, Commit, Date, InteropVersion)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\ninterop layer: %s\n", Version, Commit, Date, InteropVersion)
}
