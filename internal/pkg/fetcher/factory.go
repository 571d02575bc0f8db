package fetcher

import (
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/retry"
)

// Config Fetcher 체인 구성 설정입니다.
type Config struct {
	// Timeout 요청 하나의 전체 타임아웃 (0: 30초)
	Timeout time.Duration

	// MaxBytes 응답 본문 상한 (0: 10MB)
	MaxBytes int64

	// UserAgent 요청에 설정할 User-Agent (빈 값: Go 기본값)
	UserAgent string

	// Retry 재시도 정책 (MaxRetries 0: 재시도 안 함)
	Retry retry.Policy

	// AllowedStatusCodes 정상으로 간주할 상태 코드 (비어 있으면 2xx)
	AllowedStatusCodes []int

	// DisableStatusCheck true이면 상태 코드를 검사하지 않고 응답을 그대로 반환합니다.
	DisableStatusCheck bool

	// HTTPOptions 기본 HTTP 클라이언트 추가 옵션
	HTTPOptions []HTTPOption
}

// New 설정에 따라 Fetcher 체인을 조립합니다.
//
// 요청은 Logging → UserAgent → Retry → StatusCode → MaxBytes → HTTP 순서로 통과합니다.
func New(cfg Config) Fetcher {
	httpOpts := append([]HTTPOption{WithTimeout(cfg.Timeout)}, cfg.HTTPOptions...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)
	if !cfg.DisableStatusCheck {
		f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	}
	if cfg.Retry.MaxRetries > 0 {
		f = NewRetryFetcher(f, cfg.Retry)
	}
	f = NewUserAgentFetcher(f, cfg.UserAgent)
	f = NewLoggingFetcher(f)

	return f
}
