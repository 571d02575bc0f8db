package mercadopago

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PreferenceRequest 체크아웃 선호(preference) 생성 요청 본문입니다.
type PreferenceRequest struct {
	Items               []Item         `json:"items"`
	Payer               Payer          `json:"payer"`
	BackURLs            BackURLs       `json:"back_urls"`
	AutoReturn          string         `json:"auto_return,omitempty"`
	StatementDescriptor string         `json:"statement_descriptor,omitempty"`
	ExternalReference   string         `json:"external_reference"`
	NotificationURL     string         `json:"notification_url,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// Item 결제 항목입니다. 단가는 JSON 숫자로 전송됩니다.
type Item struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price"`
	CurrencyID  string      `json:"currency_id"`
}

// NewItem decimal 단가로 결제 항목을 만듭니다.
func NewItem(title, description string, quantity int, unitPrice decimal.Decimal, currencyID string) Item {
	return Item{
		Title:       title,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   json.Number(unitPrice.String()),
		CurrencyID:  currencyID,
	}
}

// Payer 결제자 정보입니다.
type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone Phone  `json:"phone"`
}

type Phone struct {
	Number string `json:"number"`
}

// BackURLs 결제 결과별로 돌아올 주소입니다.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// Preference 생성된 선호 정보입니다. InitPoint로 구매자를 보내면 결제가 시작됩니다.
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment 결제 조회 결과입니다.
type Payment struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
	PreferenceID      string
	TransactionAmount decimal.Decimal
	CurrencyID        string
	DateApproved      *time.Time
	Metadata          map[string]any
}
