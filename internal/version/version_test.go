package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	stamped := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-17T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}}

	tests := []struct {
		name      string
		commit    string
		buildTime string
		info      *debug.BuildInfo
		want      Info
		wantStr   string
	}{
		{
			name:    "nothing known",
			want:    Info{Commit: "unknown", BuildTime: "unknown"},
			wantStr: "praxis dev (commit: unknown, built: unknown, " + runtime.Version() + ")",
		},
		{
			name:    "vcs stamps",
			info:    stamped,
			want:    Info{Commit: "0123456789abcdef", BuildTime: "2026-10-17T12:00:00Z", Modified: true},
			wantStr: "praxis dev (commit: 0123456-dirty, built: 2026-10-17T12:00:00Z, " + runtime.Version() + ")",
		},
		{
			name:      "ldflags win",
			commit:    "fedcba9876543210",
			buildTime: "2026-10-01",
			info:      stamped,
			want:      Info{Commit: "fedcba9876543210", BuildTime: "2026-10-01", Modified: true},
			wantStr:   "praxis dev (commit: fedcba9-dirty, built: 2026-10-01, " + runtime.Version() + ")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldCommit, oldTime, oldRead := Commit, BuildTime, readBuildInfo
			t.Cleanup(func() { Commit, BuildTime, readBuildInfo = oldCommit, oldTime, oldRead })
			Commit, BuildTime = tt.commit, tt.buildTime
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.info, tt.info != nil }

			tt.want.GoVersion = runtime.Version()
			assert.Equal(t, tt.want, Get())
			assert.Equal(t, tt.wantStr, String())
		})
	}
}
