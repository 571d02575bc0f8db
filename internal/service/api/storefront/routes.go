// Package storefront 스토어프런트 API 라우트를 정의하고 설정합니다.
//
// 주요 엔드포인트:
//   - GET    /api/catalog                        - ERP 카탈로그 (캐시 금지)
//   - GET    /api/catalog/products               - 필터, 검색, 정렬된 상품 목록
//   - GET    /api/catalog/products/:ref/links    - 상품 견적 문의 링크
//   - GET    /api/catalog/book                   - 인쇄용 카탈로그 책
//   - POST   /api/carts                          - 장바구니 생성
//   - GET    /api/carts/:id                      - 장바구니 조회
//   - POST   /api/carts/:id/items                - 상품 담기
//   - PUT    /api/carts/:id/items/:ref           - 수량 변경
//   - DELETE /api/carts/:id/items/:ref           - 상품 빼기
//   - DELETE /api/carts/:id                      - 장바구니 비우기
//   - POST   /api/create-payment                 - Mercado Pago 결제 생성
//   - POST   /api/checkout/whatsapp              - WhatsApp 계좌 이체 주문 링크
//   - POST   /api/checkout/confirm               - 계좌 이체 주문 제출 확인
//   - GET    /api/payment/:outcome               - 결제 결과 페이지
//   - POST   /api/webhooks/mercadopago           - Mercado Pago 결제 알림
package storefront

import (
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/auth"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/middleware"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/storefront/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 스토어프런트 API 라우트를 설정합니다.
//
// 미들웨어 적용:
//   - JSON 본문을 받는 엔드포인트: ValidateContentType (JSON 검증)
//   - 웹훅 엔드포인트: VerifyWebhookSignature (X-Signature 검증)
func RegisterRoutes(e *echo.Echo, h *handler.Handler, verifier *auth.SignatureVerifier) {
	jsonOnly := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	api := e.Group("/api")

	// 1. 카탈로그
	catalogGroup := api.Group("/catalog")
	catalogGroup.GET("", h.GetCatalogHandler)
	catalogGroup.GET("/products", h.ListProductsHandler)
	catalogGroup.GET("/products/:ref/links", h.ProductLinksHandler)
	catalogGroup.GET("/book", h.GetBookHandler)

	// 2. 장바구니
	carts := api.Group("/carts")
	carts.POST("", h.CreateCartHandler)
	carts.GET("/:id", h.GetCartHandler)
	carts.DELETE("/:id", h.ClearCartHandler)
	carts.POST("/:id/items", h.AddCartItemHandler, jsonOnly)
	carts.PUT("/:id/items/:ref", h.UpdateCartItemHandler, jsonOnly)
	carts.DELETE("/:id/items/:ref", h.RemoveCartItemHandler)

	// 3. 주문
	api.POST("/create-payment", h.CreatePaymentHandler, jsonOnly)
	api.POST("/checkout/whatsapp", h.WhatsAppCheckoutHandler, jsonOnly)
	api.POST("/checkout/confirm", h.ConfirmCheckoutHandler, jsonOnly)

	// 4. 결제 결과와 알림
	api.GET("/payment/:outcome", h.PaymentOutcomeHandler)
	api.POST("/webhooks/mercadopago", h.MercadoPagoWebhookHandler, middleware.VerifyWebhookSignature(verifier))
}
