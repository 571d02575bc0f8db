// Package httputil API 핸들러가 공통으로 쓰는 오류 응답 생성과 전역 에러 핸들러를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 핸들러가 AppError를 그대로 반환하면 FromError로 상태 코드를 정합니다.
// 에러 발생 시 적절한 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	body := response.ErrorResponse{Error: constants.ErrMsgInternalServer}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = FromError(err)
	}

	code := he.Code
	switch msg := he.Message.(type) {
	case string:
		body.Error = msg
	case response.ErrorResponse:
		body = msg
	}

	// Echo 기본 문구("Not Found" 등)는 사용자용 문구로 바꿉니다.
	switch {
	case code == http.StatusNotFound && body.Error == http.StatusText(http.StatusNotFound):
		body.Error = constants.ErrMsgNotFound
	case code == http.StatusRequestEntityTooLarge && body.Error == http.StatusText(http.StatusRequestEntityTooLarge):
		body.Error = constants.ErrMsgRequestEntityTooLarge
	case code == http.StatusServiceUnavailable && body.Error == http.StatusText(http.StatusServiceUnavailable):
		body.Error = constants.ErrMsgServiceUnavailable
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지: 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	// HEAD 요청 처리: HTTP 명세에 따라 헤더만 반환하고 본문은 생략
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, body)
}
