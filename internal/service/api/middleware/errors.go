package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환할 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 요청의 Content-Type을 서버가 지원하지 않을 때 반환할 415 에러입니다.
	ErrUnsupportedMediaType = echo.NewHTTPError(http.StatusUnsupportedMediaType, response.ErrorResponse{Error: constants.ErrMsgUnsupportedMediaType})

	// ErrInvalidWebhookSignature 웹훅 서명 검증에 실패했을 때 반환할 401 에러입니다.
	ErrInvalidWebhookSignature = httputil.NewUnauthorizedError(constants.ErrMsgInvalidWebhookSignature)

	// ErrBodyReadFailed 네트워크 문제 등으로 요청 본문을 읽지 못했을 때 반환하는 에러입니다.
	ErrBodyReadFailed = httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
)

// NewErrPanicRecovered 캡처된 패닉 값을 내부 시스템 오류로 래핑하여 새로운 에러를 생성합니다.
func NewErrPanicRecovered(r any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
