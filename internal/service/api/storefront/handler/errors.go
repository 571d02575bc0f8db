package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/payment/mercadopago"
	"github.com/labstack/echo/v4"
)

// NewErrInvalidBody 요청 본문(Body)이 올바른 JSON이 아니거나 바인딩에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrInvalidQuery 쿼리 파라미터를 해석할 수 없을 때 발생하는 에러를 생성합니다.
func NewErrInvalidQuery() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
}

// NewErrValidationFailed 필수 값 누락 등 유효성 검증에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// NewErrInvalidSort 알 수 없는 정렬 기준이 요청되었을 때 발생하는 에러를 생성합니다.
func NewErrInvalidSort(sort string) error {
	return httputil.NewBadRequestError(fmt.Sprintf(constants.ErrMsgInvalidSort, sort))
}

// NewErrInvalidPage 책의 범위를 벗어난 페이지가 요청되었을 때 발생하는 에러를 생성합니다.
func NewErrInvalidPage(page, total int) error {
	return httputil.NewBadRequestError(fmt.Sprintf(constants.ErrMsgInvalidPage, page, total))
}

// NewErrInvalidDirection 알 수 없는 넘김 방향이 요청되었을 때 발생하는 에러를 생성합니다.
func NewErrInvalidDirection(dir string) error {
	return httputil.NewBadRequestError(fmt.Sprintf(constants.ErrMsgInvalidDirection, dir))
}

// NewErrProductNotFound 카탈로그에 없는 참조 코드가 요청되었을 때 발생하는 에러를 생성합니다.
func NewErrProductNotFound(referencia string) error {
	return httputil.NewNotFoundError(fmt.Sprintf(constants.ErrMsgProductNotFound, referencia))
}

// newErrCreatePayment 결제 생성 실패를 응답 에러로 바꿉니다.
//
//   - 자격 증명 누락: 500, 해당 문구
//   - Mercado Pago 거절: 500, 결제 생성 실패 문구와 대행사 응답 본문
//   - 주문 검증 실패: 400, 검증 문구
//   - 그 외: 500, 내부 오류 문구
func newErrCreatePayment(err error) error {
	body := response.ErrorResponse{Error: constants.ErrMsgInternalServer}

	switch {
	case errors.Is(err, mercadopago.ErrMissingCredentials):
		body.Error = apperrors.UserMessage(err, mercadopago.CreatePaymentErrorMessage)
	case mercadopago.IsRejected(err):
		body.Error = mercadopago.CreatePaymentErrorMessage
		body.Details = mercadopago.ErrorDetails(err)
	case isOrderValidationError(err):
		return httputil.FromError(err)
	}

	he := echo.NewHTTPError(http.StatusInternalServerError, body)
	he.Internal = err
	return he
}

// isOrderValidationError 요청 본문 때문에 주문을 만들 수 없는 경우인지 확인합니다.
func isOrderValidationError(err error) bool {
	return errors.Is(err, checkout.ErrIncompleteCustomer) ||
		errors.Is(err, checkout.ErrEmptyOrder) ||
		errors.Is(err, checkout.ErrInvalidItem) ||
		errors.Is(err, cart.ErrInvalidCartID)
}
