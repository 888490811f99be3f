package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		rev   string
		dirty bool
		want  string
	}{
		{"0123456789abcdef", false, "0123456"},
		{"0123456789abcdef", true, "0123456-dirty"},
		{"abc", false, "abc"},
		{"", true, "-dirty"},
	}

	for _, tt := range tests {
		if got := shortCommit(tt.rev, tt.dirty); got != tt.want {
			t.Errorf("shortCommit(%q, %v) = %v, want %v", tt.rev, tt.dirty, got, tt.want)
		}
	}
}

func TestApplyBuildSettings(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		name        string
		settings    []debug.BuildSetting
		wantVersion string
		wantCommit  string
	}{
		{
			name: "clean checkout",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "fedcba9876543210"},
				{Key: "vcs.time", Value: "2024-03-05T10:00:00Z"},
				{Key: "vcs.modified", Value: "false"},
			},
			wantVersion: "dev-20240305",
			wantCommit:  "fedcba9",
		},
		{
			name: "dirty tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "fedcba9876543210"},
				{Key: "vcs.modified", Value: "true"},
			},
			wantCommit: "fedcba9-dirty",
		},
		{
			name: "bad time is ignored",
			settings: []debug.BuildSetting{
				{Key: "vcs.time", Value: "yesterday"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = "", ""
			applyBuildSettings(tt.settings)

			if Version != tt.wantVersion {
				t.Errorf("Version = %v, want %v", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %v, want %v", Commit, tt.wantCommit)
			}
		})
	}
}

func TestApplyBuildSettings_KeepsLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.0.0", "release"
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "fedcba9876543210"},
		{Key: "vcs.time", Value: "2024-03-05T10:00:00Z"},
	})

	if Version != "v1.0.0" || Commit != "release" {
		t.Errorf("got %v/%v, want v1.0.0/release", Version, Commit)
	}
}

func TestDetailed(t *testing.T) {
	got := Detailed()
	for _, want := range []string{Version, Commit, runtime.Version(), runtime.GOOS} {
		if !strings.Contains(got, want) {
			t.Errorf("Detailed() = %q, missing %q", got, want)
		}
	}
}
