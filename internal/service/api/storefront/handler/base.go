// Package handler 스토어프런트 API의 HTTP 요청 핸들러를 제공합니다.
//
// 카탈로그 조회, 장바구니, 주문(Mercado Pago 결제, WhatsApp 계좌 이체)과
// 결제 결과 페이지, Mercado Pago 웹훅 요청을 받아 검증한 뒤 도메인 서비스에 위임합니다.
package handler

import (
	"context"
	"fmt"

	"github.com/darkkaiser/sangabriel-catalog/internal/book"
	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// CatalogSource 카탈로그를 제공하는 서비스입니다.
type CatalogSource interface {
	// Live ERP를 직접 호출한 최신 카탈로그
	Live(ctx context.Context) (catalog.Response, error)

	// Snapshot 주기적으로 갱신되는 카탈로그 스냅샷
	Snapshot(ctx context.Context) (catalog.Response, error)
}

// CheckoutService 주문과 결제를 처리하는 서비스입니다.
type CheckoutService interface {
	CreatePayment(ctx context.Context, req checkout.OrderRequest) (checkout.PaymentResult, error)
	WhatsAppOrder(ctx context.Context, req checkout.OrderRequest) (checkout.WhatsAppResult, error)
	Confirm(ctx context.Context, req checkout.OrderRequest) (checkout.Confirmation, error)
	Outcome(ctx context.Context, outcome checkout.Outcome, params checkout.ReturnParams, cartID string) (checkout.OutcomePage, error)
	HandleWebhook(ctx context.Context, event checkout.WebhookEvent) (checkout.WebhookResult, error)
}

var _ CheckoutService = (*checkout.Service)(nil)

// Handler 스토어프런트 API 요청을 처리합니다.
type Handler struct {
	catalogs  CatalogSource
	carts     *cart.Registry
	checkouts CheckoutService

	// contact 상품 견적 문의 링크의 수신처
	contact config.ContactConfig

	// defaultLayout layout 쿼리 파라미터가 없을 때 사용하는 책 배치
	defaultLayout string
}

// NewHandler Handler 인스턴스를 생성합니다.
//
// defaultLayout이 비어 있으면 섹션 기반 배치를 사용합니다.
//
// Panics:
//   - catalogs, carts, checkouts 중 하나라도 nil인 경우
func NewHandler(catalogs CatalogSource, carts *cart.Registry, checkouts CheckoutService, contact config.ContactConfig, defaultLayout string) *Handler {
	if catalogs == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "CatalogSource"))
	}
	if carts == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "CartRegistry"))
	}
	if checkouts == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "CheckoutService"))
	}

	if defaultLayout == "" {
		defaultLayout = book.LayoutSections
	}

	return &Handler{
		catalogs:  catalogs,
		carts:     carts,
		checkouts: checkouts,

		contact: contact,

		defaultLayout: defaultLayout,
	}
}

// log는 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
