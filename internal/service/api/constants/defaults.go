package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	// ERP 조회는 재시도를 포함해 최대 30여 초가 걸릴 수 있으므로 그보다 길게 잡습니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 최대 시간
	DefaultReadTimeout = 15 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 시간. 요청 타임아웃보다 길어야 503 응답을 보낼 수 있습니다.
	DefaultWriteTimeout = 75 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 120 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기
	DefaultMaxBodySize = "128K"

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 40
)
