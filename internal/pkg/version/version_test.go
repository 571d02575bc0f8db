package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// readBuildInfo를 교체하므로 병렬로 실행하지 않습니다.
func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()

	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return bi, bi != nil
	}
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolve_FromVCS(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f25b8bf0123456"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	got := resolve(Info{})
	assert.Equal(t, "v0.3.1", got.Version)
	assert.Equal(t, "f25b8bf0123456", got.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", got.BuildDate)
	assert.True(t, got.DirtyBuild)
	assert.Equal(t, runtime.Version(), got.GoVersion)
}

func TestResolve_InjectedValuesWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	})

	got := resolve(Info{Version: "v1.0.0", Commit: "abc"})
	assert.Equal(t, "v1.0.0", got.Version)
	assert.Equal(t, "abc", got.Commit)
}

func TestResolve_NoBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)

	got := resolve(Info{})
	assert.Equal(t, unknown, got.Version)
	assert.Equal(t, unknown, got.Commit)
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want string
	}{
		{"버전만", Info{Version: "v1.0.0"}, "v1.0.0"},
		{"dirty", Info{Version: "v1.0.0", DirtyBuild: true}, "v1.0.0+dirty"},
		{
			"전체",
			Info{Version: "v1.0.0", Commit: "f25b8bf0123", BuildNumber: "12", GoVersion: "go1.24.0", OS: "linux", Arch: "amd64"},
			"v1.0.0 (commit: f25b8bf, build: 12, go: go1.24.0, linux/amd64)",
		},
		{"unknown 커밋 생략", Info{Version: "v1.0.0", Commit: unknown}, "v1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	bi := Get()
	assert.NotEmpty(t, bi.Version)
	assert.Equal(t, bi.Version, Version())
	assert.Contains(t, bi.ToMap(), "commit")
}
