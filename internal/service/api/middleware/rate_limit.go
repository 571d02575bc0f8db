package middleware

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지하는 IP별 Limiter의 최대 개수입니다.
	// 한도에 도달하면 Go Map의 무작위 순회를 이용해 임의의 항목 하나를 제거합니다.
	maxIPRateLimiters = 10000

	// retryAfterSeconds 속도 제한 초과 시 클라이언트에게 제안하는 대기 시간(초)
	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별 Rate Limiter를 관리하는 구조체입니다.
//
// Token Bucket 알고리즘으로 IP마다 독립적인 제한을 적용하며, 여러 고루틴에서 동시에 사용해도 안전합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter 특정 IP의 Rate Limiter를 반환합니다. 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double-check: 다른 고루틴이 이미 생성했을 수 있음
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	if len(i.limiters) >= maxIPRateLimiters {
		for oldIP := range i.limiters {
			delete(i.limiters, oldIP)
			break
		}
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimitConfig RateLimitWithConfig 설정입니다.
type RateLimitConfig struct {
	// RequestsPerSecond IP별 초당 허용 요청 수
	RequestsPerSecond float64

	// Burst 순간적으로 허용하는 최대 요청 수
	Burst int

	// Skipper true를 반환한 요청은 제한하지 않습니다 (예: 결제 대행사 웹훅, 헬스체크).
	Skipper echomw.Skipper
}

// RateLimit IP 기반 Rate Limiting 미들웨어를 반환합니다.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{RequestsPerSecond: requestsPerSecond, Burst: burst})
}

// RateLimitWithConfig IP 기반 Rate Limiting 미들웨어를 반환합니다.
//
// 제한 초과 시 HTTP 429와 Retry-After 헤더를 반환합니다.
// 저장소는 메모리이므로 인스턴스마다 독립적으로 제한합니다.
//
// Panics:
//   - RequestsPerSecond 또는 Burst가 0 이하인 경우
func RateLimitWithConfig(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, cfg.RequestsPerSecond))
	}
	if cfg.Burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, cfg.Burst))
	}
	if cfg.Skipper == nil {
		cfg.Skipper = echomw.DefaultSkipper
	}

	limiter := newIPRateLimiter(cfg.RequestsPerSecond, cfg.Burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.RetryAfter, retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
