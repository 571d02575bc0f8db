package handler

import (
	"io"
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// MercadoPagoWebhookHandler godoc
// @Summary Mercado Pago 결제 알림 수신
// @Description Mercado Pago가 보내는 결제 알림을 받아 결제 상태를 조회하고 주문을 처리합니다.
// @Description 같은 결제의 같은 상태 알림은 한 번만 처리합니다.
// @Description
// @Description 알림을 해석하거나 처리하지 못해도 항상 200으로 응답합니다.
// @Description 웹훅 비밀키가 설정되어 있으면 X-Signature 헤더를 검증합니다.
// @Tags Payment
// @Accept json
// @Produce json
// @Param X-Signature header string false "Mercado Pago 서명 (ts=...,v1=...)"
// @Param X-Request-Id header string false "Mercado Pago 요청 ID"
// @Param data.id query string false "결제 ID"
// @Param type query string false "알림 종류"
// @Success 200 {object} response.WebhookResponse "수신 확인"
// @Failure 401 {object} response.ErrorResponse "서명 검증 실패"
// @Router /api/webhooks/mercadopago [post]
func (h *Handler) MercadoPagoWebhookHandler(c echo.Context) error {
	ack := response.WebhookResponse{Received: true}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.log(c).WithField("error", err.Error()).Warn("웹훅 본문 읽기 실패")
		return c.JSON(http.StatusOK, ack)
	}

	event, err := checkout.ParseWebhook(body, c.QueryParams())
	if err != nil {
		h.log(c).WithFields(applog.Fields{
			"error":      err.Error(),
			"body_bytes": len(body),
		}).Warn("웹훅 알림 해석 실패")
		return c.JSON(http.StatusOK, ack)
	}

	result, err := h.checkouts.HandleWebhook(c.Request().Context(), event)
	if err != nil {
		h.log(c).WithFields(applog.Fields{
			"type":       event.Kind(),
			"payment_id": event.Data.ID,
			"error":      err.Error(),
		}).Error("웹훅 알림 처리 실패")
	}
	ack.WebhookResult = result

	return c.JSON(http.StatusOK, ack)
}
