package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMercadoPagoWebhookHandler(t *testing.T) {
	t.Parallel()

	paymentEvent := func(id string) any {
		return mock.MatchedBy(func(e checkout.WebhookEvent) bool {
			return e.Kind() == "payment" && e.Data.ID == id
		})
	}

	tests := []struct {
		name       string
		target     string
		body       string
		setupMock  func(m *mockCheckout)
		wantResult response.WebhookResponse
	}{
		{
			name:   "성공: 본문의 결제 ID",
			target: "/api/webhooks/mercadopago",
			body:   `{"type":"payment","action":"payment.updated","data":{"id":"123"}}`,
			setupMock: func(m *mockCheckout) {
				m.On("HandleWebhook", mock.Anything, paymentEvent("123")).
					Return(checkout.WebhookResult{PaymentID: "123", Status: checkout.PaymentApproved, Processed: true}, nil).Once()
			},
			wantResult: response.WebhookResponse{
				Received:      true,
				WebhookResult: checkout.WebhookResult{PaymentID: "123", Status: checkout.PaymentApproved, Processed: true},
			},
		},
		{
			name:   "성공: 쿼리의 결제 ID와 종류",
			target: "/api/webhooks/mercadopago?type=payment&data.id=456",
			body:   "",
			setupMock: func(m *mockCheckout) {
				m.On("HandleWebhook", mock.Anything, paymentEvent("456")).
					Return(checkout.WebhookResult{PaymentID: "456", Duplicate: true}, nil).Once()
			},
			wantResult: response.WebhookResponse{
				Received:      true,
				WebhookResult: checkout.WebhookResult{PaymentID: "456", Duplicate: true},
			},
		},
		{
			name:   "처리 실패도 200",
			target: "/api/webhooks/mercadopago",
			body:   `{"type":"payment","data":{"id":"789"}}`,
			setupMock: func(m *mockCheckout) {
				m.On("HandleWebhook", mock.Anything, paymentEvent("789")).
					Return(checkout.WebhookResult{PaymentID: "789"}, errors.New("mercadopago: timeout")).Once()
			},
			wantResult: response.WebhookResponse{
				Received:      true,
				WebhookResult: checkout.WebhookResult{PaymentID: "789"},
			},
		},
		{
			name:       "해석 실패도 200",
			target:     "/api/webhooks/mercadopago",
			body:       `{"type":`,
			setupMock:  func(*mockCheckout) {},
			wantResult: response.WebhookResponse{Received: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := setupTestHandler(t)
			tt.setupMock(env.checkouts)

			var body any
			if tt.body != "" {
				body = tt.body
			}
			rec := env.do(t, http.MethodPost, tt.target, body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantResult, decode[response.WebhookResponse](t, rec))
			assert.NotContains(t, rec.Body.String(), "timeout")
			env.checkouts.AssertExpectations(t)
		})
	}
}
