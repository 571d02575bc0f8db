package request

// AddCartItemRequest 장바구니에 상품을 담는 요청입니다.
type AddCartItemRequest struct {
	// Referencia 카탈로그의 상품 참조 코드
	Referencia string `json:"referencia" validate:"required" example:"SG-3"`

	// Cantidad 담을 수량 (0 이하이면 1)
	Cantidad int `json:"cantidad" validate:"max=9999" example:"2"`
}

// UpdateCartItemRequest 담긴 상품의 수량을 바꾸는 요청입니다.
type UpdateCartItemRequest struct {
	// Cantidad 새 수량 (0 이하이면 상품을 뺍니다)
	Cantidad int `json:"cantidad" validate:"max=9999" example:"3"`
}
