// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/smazurov/glyphd/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release tag.
	Version = "dev"
	// GitCommit is the source revision.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version and build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns version and build information. When the commit was not
// injected it falls back to the VCS stamp recorded by the toolchain.
func Get() Info {
	commit := GitCommit
	if commit == "unknown" {
		commit = vcsRevision()
	}
	return Info{
		Version:   Version,
		GitCommit: commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns "<version> (<short commit>)".
func String() string {
	info := Get()
	commit := info.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", info.Version, commit)
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return "unknown"
}
