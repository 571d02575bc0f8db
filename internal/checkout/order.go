package checkout

import (
	"strings"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	// ErrIncompleteCustomer 이름, 이메일, 전화번호 중 하나 이상이 비어 있습니다.
	ErrIncompleteCustomer = apperrors.New(apperrors.InvalidInput, "Por favor completa todos los campos obligatorios")

	// ErrEmptyOrder 주문할 상품이 없습니다.
	ErrEmptyOrder = apperrors.New(apperrors.InvalidInput, "El carrito está vacío")

	// ErrInvalidItem 요청 항목의 가격이 0 이하이거나 수량이 최대 수량을 넘습니다.
	ErrInvalidItem = apperrors.New(apperrors.InvalidInput, "Precio o cantidad inválidos en el pedido")
)

// Customer 주문자 정보입니다. Notes만 선택 항목입니다.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

// Normalize 앞뒤 공백을 제거한 사본을 반환합니다.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
		Notes: strings.TrimSpace(c.Notes),
	}
}

// Validate 필수 항목이 모두 채워졌는지 검사합니다. 공백만 있는 값은 빈 값으로 봅니다.
func (c Customer) Validate() error {
	if err := validator.Struct(c.Normalize()); err != nil {
		return ErrIncompleteCustomer
	}
	return nil
}

// Method 결제 방식입니다.
type Method string

const (
	MethodMercadoPago  Method = "mercadopago"
	MethodBankTransfer Method = "bank_transfer"
)

// Order 결제를 시작했거나 제출한 주문의 기록입니다.
type Order struct {
	CartID            string          `json:"cart_id,omitempty"`
	ExternalReference string          `json:"external_reference"`
	Method            Method          `json:"method"`
	Customer          Customer        `json:"customer"`
	Items             []cart.Item     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	Date              time.Time       `json:"date"`
	SubmittedAt       *time.Time      `json:"submitted_at,omitempty"`
}

// TotalItems 전체 수량의 합입니다.
func (o Order) TotalItems() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// orderItems 수량이 1 이상이고 참조 코드가 있는 항목만 남깁니다.
func orderItems(items []cart.Item) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || strings.TrimSpace(item.Product.Referencia) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// validateRequestItems 장바구니 없이 요청 본문으로 들어온 항목의 가격과 수량을 검사합니다.
func validateRequestItems(items []cart.Item) error {
	for _, item := range items {
		if !item.Product.Precio.IsPositive() || item.Quantity > cart.MaxQuantity {
			return ErrInvalidItem
		}
	}
	return nil
}

func orderTotal(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
