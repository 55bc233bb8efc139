// Package version reports which build of praxis is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/example/praxis/internal/version.Commit=...".
// Empty values fall back to the VCS stamps embedded by the Go toolchain.
var (
	Commit    = ""
	BuildTime = ""
)

const unknown = "unknown"

// Info describes the running build.
type Info struct {
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"goVersion"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get resolves the build info. Linker-set values win over VCS stamps.
func Get() Info {
	info := Info{Commit: Commit, BuildTime: BuildTime, GoVersion: runtime.Version()}
	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}

// String is the one-line form printed by --version.
func String() string {
	info := Get()
	commit := info.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if info.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("praxis dev (commit: %s, built: %s, %s)", commit, info.BuildTime, info.GoVersion)
}
