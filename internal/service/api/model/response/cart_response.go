package response

// CartCreatedResponse 새로 발급한 장바구니 ID입니다.
type CartCreatedResponse struct {
	CartID string `json:"cart_id" example:"6f1c2a4e-8a51-4b6b-9a0e-0f3c1d2e4b5a"`
}
