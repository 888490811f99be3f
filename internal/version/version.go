package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/picker/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/picker/internal/version.Commit=abc123" ./cmd/picker
//
// Otherwise they come from VCS build info, then fall back to "dev-<timestamp>".
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			applyBuildSettings(info.Settings)
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// applyBuildSettings fills whichever of Version and Commit is still empty
// from the vcs.* settings the go tool embeds.
func applyBuildSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if Commit == "" && vcs["vcs.revision"] != "" {
		Commit = shortCommit(vcs["vcs.revision"], vcs["vcs.modified"] == "true")
	}

	// No tags in build info, so the best we can do is the commit date
	if Version == "" && vcs["vcs.time"] != "" {
		if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

func shortCommit(rev string, dirty bool) string {
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return rev
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Detailed adds the Go toolchain and platform, for `picker version`.
func Detailed() string {
	return fmt.Sprintf("%s, %s %s/%s", Full(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
