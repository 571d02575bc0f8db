package middleware

import (
	"bytes"
	"io"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/auth"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
)

// queryDataID Mercado Pago가 알림 URL에 붙이는 결제 ID 쿼리 파라미터
const queryDataID = "data.id"

// VerifyWebhookSignature Mercado Pago 웹훅의 X-Signature 헤더를 검증하는 미들웨어를 반환합니다.
//
// 서명 원문의 data.id는 쿼리 파라미터에서 먼저 찾고, 없으면 요청 본문의 data.id를 읽습니다.
// 본문을 읽은 경우 핸들러가 다시 읽을 수 있도록 복원합니다.
// 검증기에 비밀키가 없으면 검증 없이 통과시킵니다.
//
// Returns:
//   - 401 Unauthorized: 서명 헤더가 없거나 형식이 틀리거나 일치하지 않는 경우
//
// Panics:
//   - verifier가 nil인 경우
func VerifyWebhookSignature(verifier *auth.SignatureVerifier) echo.MiddlewareFunc {
	if verifier == nil {
		panic(constants.PanicMsgSignatureVerifierRequired)
	}

	if !verifier.Enabled() {
		applog.WithComponent(constants.ComponentMiddlewareWebhookSignature).Warn(constants.LogMsgWebhookSignatureDisabled)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !verifier.Enabled() {
				return next(c)
			}

			dataID, err := extractDataID(c)
			if err != nil {
				return err
			}

			req := c.Request()
			signature := req.Header.Get(constants.XSignature)
			requestID := req.Header.Get(constants.XRequestID)

			if err := verifier.Verify(signature, requestID, dataID); err != nil {
				applog.WithComponentAndFields(constants.ComponentMiddlewareWebhookSignature, applog.Fields{
					"data_id":    dataID,
					"request_id": requestID,
					"remote_ip":  c.RealIP(),
					"error":      err,
				}).Warn(constants.LogMsgWebhookSignatureInvalid)

				return ErrInvalidWebhookSignature
			}

			return next(c)
		}
	}
}

// extractDataID 쿼리 파라미터 또는 본문에서 결제 ID를 찾습니다.
func extractDataID(c echo.Context) (string, error) {
	if id := c.QueryParam(queryDataID); id != "" {
		return id, nil
	}

	req := c.Request()
	if req.Body == nil {
		return "", nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return "", ErrBodyReadFailed
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	return gjson.GetBytes(body, "data.id").String(), nil
}
