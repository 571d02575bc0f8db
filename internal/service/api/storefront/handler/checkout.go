package handler

import (
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// CreatePaymentHandler godoc
// @Summary Mercado Pago 결제 생성
// @Description 주문 정보로 Mercado Pago 결제 선호(preference)를 만들고 결제 페이지 주소를 반환합니다.
// @Description
// @Description cart_id가 있으면 서버에 저장된 장바구니의 항목과 총액을 사용하고, 요청의 items와 total은 무시합니다.
// @Description 결제 완료 후 /api/payment/{outcome}으로 돌아오며, 결제 알림은 /api/webhooks/mercadopago로 전달됩니다.
// @Description
// @Description ## 사용 예시 (로컬 환경)
// @Description ```bash
// @Description curl -X POST "http://localhost:3000/api/create-payment" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"cart_id":"6f1c2a4e-8a51-4b6b-9a0e-0f3c1d2e4b5a","customer":{"name":"Ana","email":"ana@example.com","phone":"1122334455"}}'
// @Description ```
// @Tags Checkout
// @Accept json
// @Produce json
// @Param order body checkout.OrderRequest true "주문"
// @Success 200 {object} response.PaymentResponse "결제 페이지 주소"
// @Failure 400 {object} response.ErrorResponse "주문자 정보 누락, 빈 장바구니 등"
// @Failure 500 {object} response.ErrorResponse "결제 생성 실패 (details에 Mercado Pago 응답)"
// @Router /api/create-payment [post]
func (h *Handler) CreatePaymentHandler(c echo.Context) error {
	req := new(checkout.OrderRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	result, err := h.checkouts.CreatePayment(c.Request().Context(), *req)
	if err != nil {
		h.log(c).WithFields(applog.Fields{
			"cart_id": req.CartID,
			"error":   err.Error(),
		}).Error("Mercado Pago 결제 생성 실패")

		return newErrCreatePayment(err)
	}

	return c.JSON(http.StatusOK, response.PaymentResponse{
		Success:           true,
		InitPoint:         result.InitPoint,
		SandboxInitPoint:  result.SandboxInitPoint,
		PreferenceID:      result.PreferenceID,
		ExternalReference: result.ExternalReference,
	})
}

// WhatsAppCheckoutHandler godoc
// @Summary WhatsApp 계좌 이체 주문 링크 생성
// @Description 주문 내역과 계좌 이체 정보, 주문자 정보를 담은 WhatsApp 메시지 링크를 만듭니다.
// @Description 주문을 제출한 것으로 기록하지는 않습니다. 메시지를 보낸 뒤 /api/checkout/confirm을 호출합니다.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param order body checkout.OrderRequest true "주문"
// @Success 200 {object} checkout.WhatsAppResult "WhatsApp 링크와 메시지"
// @Failure 400 {object} response.ErrorResponse "주문자 정보 누락, 빈 장바구니 등"
// @Router /api/checkout/whatsapp [post]
func (h *Handler) WhatsAppCheckoutHandler(c echo.Context) error {
	req := new(checkout.OrderRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	result, err := h.checkouts.WhatsAppOrder(c.Request().Context(), *req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ConfirmCheckoutHandler godoc
// @Summary 계좌 이체 주문 제출 확인
// @Description 계좌 이체 주문을 제출된 것으로 기록하고, 잠시 뒤 장바구니를 비우도록 예약합니다.
// @Description cart_id가 필요합니다.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param order body checkout.OrderRequest true "주문"
// @Success 200 {object} checkout.Confirmation "제출 확인"
// @Failure 400 {object} response.ErrorResponse "장바구니 ID 누락, 주문자 정보 누락 등"
// @Router /api/checkout/confirm [post]
func (h *Handler) ConfirmCheckoutHandler(c echo.Context) error {
	req := new(checkout.OrderRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	confirmation, err := h.checkouts.Confirm(c.Request().Context(), *req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, confirmation)
}
