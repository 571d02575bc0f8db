package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 설정입니다.
type Options struct {
	Name  string // 로그 파일명 접두어
	Dir   string // 로그 디렉토리 (기본값: logs)
	Level Level

	MaxAge     int // 보관 일수 (0: 삭제하지 않음)
	MaxSizeMB  int // 파일당 최대 크기 (0: 100MB)
	MaxBackups int // 최대 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 별도 파일에도 기록
	EnableVerboseLog  bool // DEBUG 이하를 메인 파일 대신 별도 파일에 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool   // 호출 위치 기록
	CallerPathPrefix string // 호출 위치에서 잘라낼 패키지 경로 접두어
}

// Validate 설정값을 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}
	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}
	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}
	return nil
}
