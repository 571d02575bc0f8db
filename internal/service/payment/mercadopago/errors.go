package mercadopago

import (
	"encoding/json"
	"errors"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/fetcher"
	"github.com/tidwall/gjson"
)

const (
	// CreatePaymentErrorMessage 결제 대행사가 선호 생성을 거절했을 때의 문구
	CreatePaymentErrorMessage = "Error al crear el pago en Mercado Pago"

	// GetPaymentErrorMessage 결제 조회가 실패했을 때의 문구
	GetPaymentErrorMessage = "Error al consultar el pago en Mercado Pago"
)

var (
	// ErrMissingCredentials 액세스 토큰이 설정되지 않았습니다.
	ErrMissingCredentials = apperrors.New(apperrors.Unauthorized, "Credenciales de Mercado Pago no configuradas")

	// ErrEmptyPaymentID 조회할 결제 ID가 비어 있습니다.
	ErrEmptyPaymentID = apperrors.New(apperrors.InvalidInput, "ID de pago vacío")
)

func newErrInvalidResponse(err error) error {
	if err == nil {
		return apperrors.New(apperrors.ExecutionFailed, "Respuesta inválida de Mercado Pago")
	}
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "Respuesta inválida de Mercado Pago")
}

func newErrEncodeRequest(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "결제 요청 본문을 JSON으로 변환하는 데 실패했습니다")
}

// IsRejected 결제 대행사가 2xx가 아닌 상태 코드로 응답한 에러인지 반환합니다.
func IsRejected(err error) bool {
	var statusErr *fetcher.HTTPStatusError
	return errors.As(err, &statusErr)
}

// ErrorDetails 결제 대행사 오류 응답 본문을 꺼냅니다.
// 본문이 JSON이면 그대로, 아니면 JSON 문자열로 감싸 반환하고, 상태 코드 에러가 아니면 nil입니다.
func ErrorDetails(err error) json.RawMessage {
	var statusErr *fetcher.HTTPStatusError
	if !errors.As(err, &statusErr) {
		return nil
	}

	if statusErr.Body != "" && gjson.Valid(statusErr.Body) {
		return json.RawMessage(statusErr.Body)
	}

	text := statusErr.Body
	if text == "" {
		text = statusErr.Status
	}
	raw, _ := json.Marshal(text)
	return raw
}

func wrapRejected(err error, message string) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, message)
}
