package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{Error: message})
}

// NewBadRequestError 400 Bad Request 에러를 생성합니다
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다
func NewUnauthorizedError(message string) error {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewNotFoundError 404 Not Found 에러를 생성합니다
func NewNotFoundError(message string) error {
	return newHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다
func NewInternalServerError(message string) error {
	return newHTTPError(http.StatusInternalServerError, message)
}

// NewServiceUnavailableError 503 Service Unavailable 에러를 생성합니다
func NewServiceUnavailableError(message string) error {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// StatusCode 에러 체인의 가장 바깥쪽 AppError 타입에 대응하는 HTTP 상태 코드를 반환합니다.
func StatusCode(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Type() {
	case apperrors.InvalidInput, apperrors.ParsingFailed:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Unavailable, apperrors.Timeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError AppError를 표준 오류 응답을 담은 echo.HTTPError로 바꿉니다.
//
// 4xx와 503은 AppError의 문구를 그대로 전달하고, 500은 내부 정보가 섞일 수 있으므로 일반 오류 문구로 대신합니다.
func FromError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	code := StatusCode(err)
	message := constants.ErrMsgInternalServer
	if code != http.StatusInternalServerError {
		message = apperrors.UserMessage(err, constants.ErrMsgInternalServer)
	}

	he = echo.NewHTTPError(code, response.ErrorResponse{Error: message})
	he.Internal = err
	return he
}

// Success 표준 성공 응답(200 OK)을 JSON 형식으로 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// NoStore 브라우저와 중간 캐시가 응답을 저장하지 않도록 헤더를 설정합니다.
func NoStore(c echo.Context) {
	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, constants.CacheControlNoStore)
	h.Set(constants.Pragma, constants.PragmaNoCache)
	h.Set(constants.Expires, constants.ExpiresImmediately)
	h.Set(constants.SurrogateControl, constants.SurrogateControlNoStore)
}
