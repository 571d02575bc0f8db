package middleware

import (
	"strings"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청의 Content-Type을 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청(GET, DELETE 등)이나 본문 길이가 0인 요청은 검증하지 않습니다.
// MIME 타입 파라미터(charset 등)는 무시하고 대소문자 구분 없이 비교합니다.
//
// Returns:
//   - 415 Unsupported Media Type: Content-Type이 일치하지 않는 경우
func ValidateContentType(expectedContentType string) echo.MiddlewareFunc {
	expected := strings.ToLower(expectedContentType)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, _ := strings.Cut(contentType, ";")
			if strings.ToLower(strings.TrimSpace(mediaType)) != expected {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expectedContentType,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgUnsupportedContentType)

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
