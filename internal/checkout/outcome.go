package checkout

import (
	"context"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

// Outcome 결제 대행사에서 돌아온 결과 종류입니다.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomePending Outcome = "pending"
)

// ParseOutcome 경로 값을 Outcome으로 바꿉니다.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeSuccess, OutcomeFailure, OutcomePending:
		return o, nil
	}
	return "", apperrors.Newf(apperrors.NotFound, "Resultado de pago desconocido: %s", s)
}

// ReturnParams 결제 대행사가 돌아오는 주소에 붙여 주는 쿼리 파라미터입니다.
type ReturnParams struct {
	PaymentID         string `json:"payment_id" query:"payment_id"`
	Status            string `json:"status" query:"status"`
	ExternalReference string `json:"external_reference" query:"external_reference"`
	PreferenceID      string `json:"preference_id" query:"preference_id"`
}

// OutcomePage 결과 화면에 표시할 내용입니다.
type OutcomePage struct {
	Outcome     Outcome      `json:"outcome"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	Details     []string     `json:"details,omitempty"`
	Footer      string       `json:"footer,omitempty"`
	Payment     ReturnParams `json:"payment"`
	CartCleared bool         `json:"cart_cleared"`
}

var outcomePages = map[Outcome]OutcomePage{
	OutcomeSuccess: {
		Title:   "¡Pago Exitoso!",
		Message: "Tu pago ha sido procesado correctamente",
	},
	OutcomeFailure: {
		Title:   "Pago Rechazado",
		Message: "No se pudo procesar tu pago",
		Details: []string{
			"Fondos insuficientes",
			"Datos de tarjeta incorrectos",
			"Límite de compra excedido",
			"Restricciones del banco emisor",
		},
	},
	OutcomePending: {
		Title:   "Pago Pendiente",
		Message: "Tu pago está siendo procesado",
		Details: []string{
			"Pago en efectivo pendiente de acreditación",
			"Transferencia bancaria en proceso",
			"Verificación de seguridad del banco",
		},
		Footer: "Te notificaremos cuando se confirme el pago.",
	},
}

// Outcome 결과 화면 내용을 만듭니다. 성공이면 cartID 장바구니와 대기 주문을 정리합니다.
// cartID가 비어 있으면 정리하지 않습니다.
func (s *Service) Outcome(ctx context.Context, outcome Outcome, params ReturnParams, cartID string) (OutcomePage, error) {
	page, ok := outcomePages[outcome]
	if !ok {
		return OutcomePage{}, apperrors.Newf(apperrors.NotFound, "Resultado de pago desconocido: %s", outcome)
	}
	page.Outcome = outcome
	page.Payment = params
	page.Details = append([]string(nil), page.Details...)

	applog.WithComponentAndFields(component, applog.Fields{
		"outcome":            outcome,
		"payment_id":         params.PaymentID,
		"status":             params.Status,
		"external_reference": params.ExternalReference,
		"preference_id":      params.PreferenceID,
	}).Info("결제 결과 페이지 요청")

	if outcome != OutcomeSuccess || cartID == "" {
		return page, nil
	}

	id, err := cart.NormalizeID(cartID)
	if err != nil {
		return OutcomePage{}, err
	}
	if err := s.completeOrder(ctx, id); err != nil {
		return OutcomePage{}, err
	}
	page.CartCleared = true

	return page, nil
}

// completeOrder 결제가 끝난 주문의 장바구니를 비우고 대기 주문을 삭제합니다.
func (s *Service) completeOrder(ctx context.Context, cartID string) error {
	if err := s.carts.Clear(ctx, cartID); err != nil {
		return err
	}

	if err := s.pending.Delete(ctx, cartID); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"cart_id": cartID,
			"error":   err.Error(),
		}).Warn("대기 주문 삭제 실패")
	}

	return nil
}
