package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Doubles
// =============================================================================

// fakeCatalog 고정된 카탈로그 또는 에러를 반환합니다.
type fakeCatalog struct {
	resp catalog.Response
	err  error
}

func (f *fakeCatalog) Live(context.Context) (catalog.Response, error) {
	return f.resp, f.err
}

func (f *fakeCatalog) Snapshot(context.Context) (catalog.Response, error) {
	return f.resp, f.err
}

type mockCheckout struct {
	mock.Mock
}

func (m *mockCheckout) CreatePayment(ctx context.Context, req checkout.OrderRequest) (checkout.PaymentResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(checkout.PaymentResult), args.Error(1)
}

func (m *mockCheckout) WhatsAppOrder(ctx context.Context, req checkout.OrderRequest) (checkout.WhatsAppResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(checkout.WhatsAppResult), args.Error(1)
}

func (m *mockCheckout) Confirm(ctx context.Context, req checkout.OrderRequest) (checkout.Confirmation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(checkout.Confirmation), args.Error(1)
}

func (m *mockCheckout) Outcome(ctx context.Context, outcome checkout.Outcome, params checkout.ReturnParams, cartID string) (checkout.OutcomePage, error) {
	args := m.Called(ctx, outcome, params, cartID)
	return args.Get(0).(checkout.OutcomePage), args.Error(1)
}

func (m *mockCheckout) HandleWebhook(ctx context.Context, event checkout.WebhookEvent) (checkout.WebhookResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(checkout.WebhookResult), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

func testProduct(ref, nombre, categoria string, precio int64) catalog.Product {
	return catalog.Product{
		Referencia: ref,
		Nombre:     nombre,
		Categoria:  categoria,
		Precio:     decimal.NewFromInt(precio),
		Moneda:     "ARS",
	}
}

// testCatalog 두 카테고리에 걸친 상품 세 개의 카탈로그입니다.
func testCatalog() catalog.Response {
	return catalog.NewResponse([]catalog.Product{
		testProduct("TW-1", "Toalla Intercalada", "Toallas", 300),
		testProduct("TW-2", "Toalla en Rollo", "Toallas", 100),
		testProduct("PH-1", "Papel Higiénico Clásico", "Papel Higiénico", 200),
	}, "Lista Mayorista", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
}

var testContact = config.ContactConfig{
	WhatsAppPhone: "5491122334455",
	SalesEmail:    "ventas@example.com",
}

type testEnv struct {
	handler   *Handler
	catalog   *fakeCatalog
	carts     *cart.Registry
	checkouts *mockCheckout
	echo      *echo.Echo
}

// setupTestHandler 메모리 저장소를 쓰는 핸들러와, 경로가 등록된 Echo 인스턴스를 생성합니다.
func setupTestHandler(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{
		catalog:   &fakeCatalog{resp: testCatalog()},
		carts:     cart.NewRegistry(store),
		checkouts: &mockCheckout{},
	}
	env.handler = NewHandler(env.catalog, env.carts, env.checkouts, testContact, "categories")

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler

	h := env.handler
	e.GET("/api/catalog", h.GetCatalogHandler)
	e.GET("/api/catalog/products", h.ListProductsHandler)
	e.GET("/api/catalog/products/:ref/links", h.ProductLinksHandler)
	e.GET("/api/catalog/book", h.GetBookHandler)
	e.POST("/api/carts", h.CreateCartHandler)
	e.GET("/api/carts/:id", h.GetCartHandler)
	e.DELETE("/api/carts/:id", h.ClearCartHandler)
	e.POST("/api/carts/:id/items", h.AddCartItemHandler)
	e.PUT("/api/carts/:id/items/:ref", h.UpdateCartItemHandler)
	e.DELETE("/api/carts/:id/items/:ref", h.RemoveCartItemHandler)
	e.POST("/api/create-payment", h.CreatePaymentHandler)
	e.POST("/api/checkout/whatsapp", h.WhatsAppCheckoutHandler)
	e.POST("/api/checkout/confirm", h.ConfirmCheckoutHandler)
	e.GET("/api/payment/:outcome", h.PaymentOutcomeHandler)
	e.POST("/api/webhooks/mercadopago", h.MercadoPagoWebhookHandler)
	env.echo = e

	return env
}

// do 요청을 보내고 응답을 기록합니다. body가 문자열이면 그대로, 그 외에는 JSON으로 변환해 보냅니다.
func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

// decode 응답 본문을 T로 해석합니다.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// newCart 장바구니 ID를 발급받습니다.
func (env *testEnv) newCart(t *testing.T) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		CartID string `json:"cart_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.CartID
}
