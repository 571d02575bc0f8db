package response

import "github.com/darkkaiser/sangabriel-catalog/internal/checkout"

// PaymentResponse Mercado Pago 결제 생성 결과입니다.
type PaymentResponse struct {
	Success           bool   `json:"success" example:"true"`
	InitPoint         string `json:"init_point" example:"https://www.mercadopago.com.ar/checkout/v1/redirect?pref_id=123"`
	SandboxInitPoint  string `json:"sandbox_init_point" example:"https://sandbox.mercadopago.com.ar/checkout/v1/redirect?pref_id=123"`
	PreferenceID      string `json:"preference_id" example:"123-abc"`
	ExternalReference string `json:"external_reference" example:"ORDER-1714557600000"`
}

// WebhookResponse 웹훅 수신 확인입니다. 처리에 실패해도 200으로 응답합니다.
type WebhookResponse struct {
	Received bool `json:"received" example:"true"`
	checkout.WebhookResult
}
