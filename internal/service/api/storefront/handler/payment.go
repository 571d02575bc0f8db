package handler

import (
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// queryCartID 결제 결과 페이지 주소에 붙는 장바구니 ID 쿼리 파라미터
const queryCartID = "cart_id"

// PaymentOutcomeHandler godoc
// @Summary 결제 결과 페이지
// @Description Mercado Pago 결제 후 돌아온 사용자에게 보여줄 결과 페이지 내용을 반환합니다.
// @Description 승인(success)이면 장바구니를 비웁니다.
// @Tags Payment
// @Produce json
// @Param outcome path string true "결과" Enums(success, failure, pending)
// @Param payment_id query string false "결제 ID"
// @Param status query string false "결제 상태"
// @Param external_reference query string false "주문 참조"
// @Param preference_id query string false "결제 선호 ID"
// @Param cart_id query string false "장바구니 ID"
// @Success 200 {object} checkout.OutcomePage "결과 페이지"
// @Failure 404 {object} response.ErrorResponse "알 수 없는 결과"
// @Router /api/payment/{outcome} [get]
func (h *Handler) PaymentOutcomeHandler(c echo.Context) error {
	outcome, err := checkout.ParseOutcome(c.Param("outcome"))
	if err != nil {
		return err
	}

	params := new(checkout.ReturnParams)
	if err := c.Bind(params); err != nil {
		return NewErrInvalidQuery()
	}

	page, err := h.checkouts.Outcome(c.Request().Context(), outcome, *params, c.QueryParam(queryCartID))
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"outcome":            outcome,
		"payment_id":         params.PaymentID,
		"external_reference": params.ExternalReference,
		"cart_cleared":       page.CartCleared,
	}).Info("결제 결과 페이지 요청")

	httputil.NoStore(c)
	return c.JSON(http.StatusOK, page)
}
