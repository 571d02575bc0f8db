package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/sangabriel-catalog/internal/service/api/middleware"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록 (예: ["https://sangabriel.com.ar"])
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 60초)
	// ERP 재시도 전체 시간보다 길어야 합니다.
	RequestTimeout time.Duration

	// BodyLimit 요청 본문 최대 크기 (예: "128K", 비어 있으면 기본값)
	BodyLimit string

	// RateLimitPerSecond, RateLimitBurst IP별 요청 속도 제한 (0 이하이면 기본값)
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// rateLimitExemptPaths 요청 속도 제한을 적용하지 않는 경로입니다.
var rateLimitExemptPaths = map[string]bool{
	"/health":                   true,
	"/api/webhooks/mercadopago": true,
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어의 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - 요청마다 X-Request-ID 부여, 로그의 request_id로 사용
//  3. Server 헤더 제거
//  4. HTTPLogger - 429/413/503 응답도 기록되도록 제한 미들웨어보다 앞에 위치
//  5. RateLimit - IP별 초당 요청 수 제한, 초과 시 429 (웹훅, 헬스체크 제외)
//  6. BodyLimit - 요청 본문 크기 제한, 초과 시 413
//  7. Timeout - 요청 처리 시간 제한, 초과 시 503
//  8. CORS - 스토어프런트 Origin 허용, Preflight 자동 응답
//  9. Secure - 보안 헤더 추가
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = constants.DefaultMaxBodySize
	}

	rps := cfg.RateLimitPerSecond
	if rps <= 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(middleware.RequestID())
	// 3. Server 헤더 제거
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Del(echo.HeaderServer)
			return next(c)
		}
	})
	// 4. HTTP 로깅
	e.Use(appmiddleware.HTTPLogger())
	// 5. Rate Limiting (결제 대행사 웹훅과 헬스체크 제외)
	e.Use(appmiddleware.RateLimitWithConfig(appmiddleware.RateLimitConfig{
		RequestsPerSecond: rps,
		Burst:             burst,
		Skipper: func(c echo.Context) bool {
			return rateLimitExemptPaths[c.Request().URL.Path]
		},
	}))
	// 6. Body Limit
	e.Use(middleware.BodyLimit(bodyLimit))
	// 7. Timeout
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	// 8. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	// 9. 보안 헤더
	e.Use(middleware.Secure())

	return e
}
