package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/darkkaiser/sangabriel-catalog/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// sensitiveQueryParams 접근 로그에서 값을 가릴 쿼리 파라미터입니다.
// 결제 결과 화면으로 돌아오는 주소에는 결제 식별자가 붙습니다.
var sensitiveQueryParams = []string{
	"access_token",
	"token",
	"secret",
	"email",
	"phone",
	"payment_id",
	"collection_id",
	"preference_id",
}

// quietPaths 헬스체크처럼 주기적으로 호출되는 경로입니다. 정상 응답은 Debug 레벨로만 남깁니다.
var quietPaths = map[string]bool{
	"/health": true,
}

// HTTPLogger 요청마다 접근 로그 한 줄을 남기는 미들웨어를 반환합니다.
//
// 로그 레벨은 응답 상태를 따릅니다 (5xx: Error, 4xx: Warn, 그 외: Info).
// 장바구니 경로는 cart_id 필드를, 라우트가 일치한 요청은 route 필드를 함께 기록하며
// 민감한 쿼리 파라미터(access_token, payment_id 등)는 가립니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// 패닉이 나도 기록되도록 defer로 남깁니다.
			defer func() {
				logAccess(c, time.Since(start))
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

func logAccess(c echo.Context, latency time.Duration) {
	req := c.Request()
	res := c.Response()

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	bytesIn := req.ContentLength
	if bytesIn < 0 {
		bytesIn = 0
	}

	fields := applog.Fields{
		"time_rfc3339": time.Now().Format(time.RFC3339),

		"method":   req.Method,
		"path":     path,
		"uri":      maskSensitiveQueryParams(req.RequestURI),
		"host":     req.Host,
		"protocol": req.Proto,

		"remote_ip":  c.RealIP(),
		"user_agent": req.UserAgent(),
		"referer":    req.Referer(),

		"status":    res.Status,
		"bytes_in":  strconv.FormatInt(bytesIn, 10),
		"bytes_out": strconv.FormatInt(res.Size, 10),

		"latency":       strconv.FormatInt(latency.Microseconds(), 10),
		"latency_human": latency.String(),

		"request_id": res.Header().Get(echo.HeaderXRequestID),
	}
	if route := c.Path(); route != "" {
		fields["route"] = route
	}
	if strings.HasPrefix(c.Path(), "/api/carts/:id") {
		fields["cart_id"] = c.Param("id")
	}

	entry := applog.WithFields(fields)

	switch {
	case res.Status >= http.StatusInternalServerError:
		entry.Error("HTTP 요청")
	case res.Status >= http.StatusBadRequest:
		entry.Warn("HTTP 요청")
	case quietPaths[path]:
		entry.Debug("HTTP 요청")
	default:
		entry.Info("HTTP 요청")
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 strutil.Mask로 가립니다.
// URI 파싱에 실패하면 원본을 반환합니다.
//
// 예시:
//
//	입력: "/api/payment/success?payment_id=1234567890&status=approved"
//	출력: "/api/payment/success?payment_id=1234%2A%2A%2A&status=approved"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range sensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
