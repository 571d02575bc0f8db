// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 버전 값은 링커 플래그로 주입합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/sangabriel-catalog/internal/pkg/version.appVersion=v1.2.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// 링커 플래그로 주입되는 값입니다. 직접 참조하지 말고 Get을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
	buildNumber   = ""
)

var current atomic.Value

// 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	current.Store(resolve(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}))
}

// Info 애플리케이션 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 현재 빌드 정보를 반환합니다.
func Get() Info {
	if bi, ok := current.Load().(Info); ok {
		return bi
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown}
}

// Version 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// resolve 비어 있는 항목을 런타임 정보와 VCS 메타데이터로 채웁니다.
func resolve(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	// ldflags 없이 go run으로 실행한 경우에도 커밋 정보를 얻기 위해 항상 확인합니다.
	if meta, ok := readBuildInfo(); ok {
		for _, s := range meta.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && meta.Main.Version != "" && meta.Main.Version != "(devel)" {
			bi.Version = meta.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	return bi
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 예: "v1.2.0+dirty (commit: f25b8bf, go: go1.24.0, linux/amd64)"
func (i Info) String() string {
	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.GoVersion != "" {
		details = append(details, "go: "+i.GoVersion)
	}
	if i.OS != "" {
		details = append(details, i.OS+"/"+i.Arch)
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
