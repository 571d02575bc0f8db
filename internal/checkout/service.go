// Package checkout 장바구니 주문을 결제로 넘기는 과정을 담당합니다.
//
// 결제 방식은 두 가지입니다.
//   - Mercado Pago: 대기 주문을 저장하고 결제 선호를 만들어 결제 페이지 주소를 돌려줍니다.
//   - 계좌 이체: WhatsApp 주문 메시지 링크를 만들고, 주문자가 제출을 확인하면 잠시 후 장바구니를 비웁니다.
//
// 결제 결과 페이지와 결제 대행사 웹훅도 이 패키지에서 처리합니다.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/payment/mercadopago"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/shopspring/decimal"
)

const component = "checkout.service"

const (
	// currencyID 결제 항목의 통화입니다. 카탈로그 통화와 무관하게 아르헨티나 페소로 청구합니다.
	currencyID = "ARS"

	statementDescriptor = "SAN GABRIEL"

	// clearTimeout 예약된 장바구니 비우기 작업 하나의 제한 시간
	clearTimeout = 10 * time.Second
)

// PaymentGateway 결제 대행사 API입니다.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref mercadopago.PreferenceRequest) (mercadopago.Preference, error)
	GetPayment(ctx context.Context, id string) (mercadopago.Payment, error)
}

var _ PaymentGateway = (*mercadopago.Client)(nil)

// Service 주문 처리 서비스입니다. 종료 시 Close를 호출해 예약된 작업을 정리해야 합니다.
type Service struct {
	cfg    config.CheckoutConfig
	appURL string

	carts   *cart.Registry
	pending *PendingOrders
	store   storage.Store
	gateway PaymentGateway

	now func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
	wg     sync.WaitGroup
}

// Option Service 생성 옵션입니다.
type Option func(*Service)

// WithClock 현재 시각 함수를 지정합니다.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService 새로운 Service를 생성합니다. appURL은 결제 후 돌아올 공개 주소입니다.
func NewService(cfg config.CheckoutConfig, appURL string, carts *cart.Registry, store storage.Store, gateway PaymentGateway, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		appURL:  strings.TrimRight(appURL, "/"),
		carts:   carts,
		pending: NewPendingOrders(store),
		store:   store,
		gateway: gateway,
		now:     time.Now,
		timers:  make(map[string]*time.Timer),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PendingOrders 대기 주문 저장소입니다.
func (s *Service) PendingOrders() *PendingOrders {
	return s.pending
}

// OrderRequest 결제 시작 요청입니다.
//
// CartID가 있으면 서버에 저장된 장바구니 항목을 우선 사용하고, 장바구니가 비어 있을 때만 Items를 사용합니다.
// 합계는 항상 항목에서 다시 계산하며, Total은 요청 측 표시 금액과의 차이를 기록하는 데만 씁니다.
type OrderRequest struct {
	Items    []cart.Item     `json:"items"`
	Customer Customer        `json:"customer"`
	Total    decimal.Decimal `json:"total" swaggertype:"number"`
	CartID   string          `json:"cart_id,omitempty"`
}

// PaymentResult 결제 선호 생성 결과입니다.
type PaymentResult struct {
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	PreferenceID      string `json:"preference_id"`
	ExternalReference string `json:"external_reference"`
}

// CreatePayment 대기 주문을 저장하고 Mercado Pago 결제 선호를 생성합니다.
func (s *Service) CreatePayment(ctx context.Context, req OrderRequest) (PaymentResult, error) {
	order, err := s.newOrder(ctx, req, MethodMercadoPago)
	if err != nil {
		return PaymentResult{}, err
	}

	if err := s.pending.Save(ctx, order.pendingID(), order); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"cart_id":            order.CartID,
			"external_reference": order.ExternalReference,
			"error":              err.Error(),
		}).Warn("대기 주문 저장 실패: 결제 생성은 계속 진행합니다")
	}

	pref, err := s.gateway.CreatePreference(ctx, s.preferenceRequest(order))
	if err != nil {
		return PaymentResult{}, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"cart_id":            order.CartID,
		"external_reference": order.ExternalReference,
		"preference_id":      pref.ID,
		"items":              order.TotalItems(),
		"total":              order.Total.StringFixed(2),
	}).Info("Mercado Pago 결제 생성 완료")

	return PaymentResult{
		InitPoint:         pref.InitPoint,
		SandboxInitPoint:  pref.SandboxInitPoint,
		PreferenceID:      pref.ID,
		ExternalReference: order.ExternalReference,
	}, nil
}

// preferenceRequest 주문을 결제 선호 요청으로 바꿉니다.
func (s *Service) preferenceRequest(order Order) mercadopago.PreferenceRequest {
	items := make([]mercadopago.Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, mercadopago.NewItem(
			item.Product.Nombre,
			"Ref: "+item.Product.Referencia,
			item.Quantity,
			item.Product.Precio,
			currencyID,
		))
	}

	metadata := map[string]any{"customer_notes": order.Customer.Notes}
	if order.CartID != "" {
		metadata["cart_id"] = order.CartID
	}

	return mercadopago.PreferenceRequest{
		Items: items,
		Payer: mercadopago.Payer{
			Name:  order.Customer.Name,
			Email: order.Customer.Email,
			Phone: mercadopago.Phone{Number: order.Customer.Phone},
		},
		BackURLs: mercadopago.BackURLs{
			Success: s.appURL + "/payment/success",
			Failure: s.appURL + "/payment/failure",
			Pending: s.appURL + "/payment/pending",
		},
		AutoReturn:          "approved",
		StatementDescriptor: statementDescriptor,
		ExternalReference:   order.ExternalReference,
		NotificationURL:     s.appURL + "/api/webhooks/mercadopago",
		Metadata:            metadata,
	}
}

// WhatsAppResult 계좌 이체 주문 메시지와 대화 시작 링크입니다.
type WhatsAppResult struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// WhatsAppOrder 계좌 정보와 주문자 정보를 담은 WhatsApp 주문 링크를 만듭니다.
func (s *Service) WhatsAppOrder(ctx context.Context, req OrderRequest) (WhatsAppResult, error) {
	order, err := s.newOrder(ctx, req, MethodBankTransfer)
	if err != nil {
		return WhatsAppResult{}, err
	}

	message := OrderMessage(order, s.cfg.BankTransfer)
	return WhatsAppResult{
		URL:     WhatsAppURL(s.cfg.WhatsAppPhone, message),
		Message: message,
	}, nil
}

// Confirmation 계좌 이체 주문 제출 결과입니다.
type Confirmation struct {
	ExternalReference string    `json:"external_reference"`
	SubmittedAt       time.Time `json:"submitted_at"`
	ClearAt           time.Time `json:"clear_at"`
}

// Confirm 계좌 이체 주문을 제출된 것으로 기록하고, ClearDelay 뒤에 장바구니를 비우도록 예약합니다.
// 같은 장바구니에 이미 예약된 작업이 있으면 새 예약으로 바꿉니다.
func (s *Service) Confirm(ctx context.Context, req OrderRequest) (Confirmation, error) {
	if req.CartID == "" {
		return Confirmation{}, cart.ErrInvalidCartID
	}

	order, err := s.newOrder(ctx, req, MethodBankTransfer)
	if err != nil {
		return Confirmation{}, err
	}

	submittedAt := order.Date
	order.SubmittedAt = &submittedAt
	if err := s.pending.Save(ctx, order.pendingID(), order); err != nil {
		return Confirmation{}, err
	}

	clearAt := submittedAt.Add(s.cfg.ClearDelay)
	if err := s.scheduleClear(ctx, order.CartID); err != nil {
		return Confirmation{}, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"cart_id":            order.CartID,
		"external_reference": order.ExternalReference,
		"items":              order.TotalItems(),
		"total":              order.Total.StringFixed(2),
		"clear_delay":        s.cfg.ClearDelay.String(),
	}).Info("계좌 이체 주문 제출")

	return Confirmation{
		ExternalReference: order.ExternalReference,
		SubmittedAt:       submittedAt,
		ClearAt:           clearAt,
	}, nil
}

// newOrder 요청을 검증하고 주문을 만듭니다.
func (s *Service) newOrder(ctx context.Context, req OrderRequest, method Method) (Order, error) {
	if err := req.Customer.Validate(); err != nil {
		return Order{}, err
	}

	var cartID string
	var items []cart.Item
	if req.CartID != "" {
		id, err := cart.NormalizeID(req.CartID)
		if err != nil {
			return Order{}, err
		}
		cartID = id

		stored, err := s.carts.Snapshot(ctx, cartID)
		if err != nil {
			return Order{}, err
		}
		items = stored
	}
	if len(items) == 0 {
		items = orderItems(req.Items)
		if err := validateRequestItems(items); err != nil {
			return Order{}, err
		}
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}

	now := s.now()
	order := Order{
		CartID:            cartID,
		ExternalReference: fmt.Sprintf("pedido-%d", now.UnixMilli()),
		Method:            method,
		Customer:          req.Customer.Normalize(),
		Items:             items,
		Total:             orderTotal(items),
		Date:              now,
	}

	if !req.Total.IsZero() && !req.Total.Equal(order.Total) {
		applog.WithComponentAndFields(component, applog.Fields{
			"cart_id":        cartID,
			"request_total":  req.Total.String(),
			"computed_total": order.Total.String(),
		}).Warn("요청 합계와 계산된 합계가 다릅니다: 계산된 합계를 사용합니다")
	}

	return order, nil
}

// pendingID 대기 주문 저장 키에 쓰는 ID입니다.
func (o Order) pendingID() string {
	if o.CartID != "" {
		return o.CartID
	}
	return o.ExternalReference
}

// scheduleClear ClearDelay 뒤에 장바구니를 비웁니다. ClearDelay가 0이면 바로 비웁니다.
func (s *Service) scheduleClear(ctx context.Context, cartID string) error {
	if s.cfg.ClearDelay <= 0 {
		return s.carts.Clear(ctx, cartID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return apperrors.New(apperrors.Unavailable, "El servicio se está cerrando")
	}

	if prev, ok := s.timers[cartID]; ok && prev.Stop() {
		s.wg.Done()
	}

	var t *time.Timer
	s.wg.Add(1)
	t = time.AfterFunc(s.cfg.ClearDelay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		if s.timers[cartID] == t {
			delete(s.timers, cartID)
		}
		s.mu.Unlock()

		s.clearCart(cartID)
	})
	s.timers[cartID] = t

	return nil
}

func (s *Service) clearCart(cartID string) {
	ctx, cancel := context.WithTimeout(context.Background(), clearTimeout)
	defer cancel()

	if err := s.carts.Clear(ctx, cartID); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"cart_id": cartID,
			"error":   err.Error(),
		}).Error("예약된 장바구니 비우기 실패")
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"cart_id": cartID,
	}).Info("주문 제출 후 장바구니를 비웠습니다")
}

// ScheduledClears 아직 실행되지 않은 장바구니 비우기 예약 수입니다.
func (s *Service) ScheduledClears() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// Close 실행 전인 예약을 취소하고, 이미 실행 중인 작업이 끝날 때까지 기다립니다.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	for id, t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
