package response

import (
	"github.com/darkkaiser/sangabriel-catalog/internal/book"
	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
)

// ProductsResponse 조건이 적용된 상품 목록입니다.
type ProductsResponse struct {
	Products   []catalog.Product `json:"products"`
	Total      int               `json:"total" example:"12"`
	Categories []string          `json:"categories"`
	Currency   string            `json:"currency" example:"ARS"`
}

// ProductLinksResponse 상품 견적 문의 링크와 표시 정보입니다.
type ProductLinksResponse struct {
	Referencia string `json:"referencia" example:"SG-3"`
	WhatsApp   string `json:"whatsapp" example:"https://wa.me/573001234567?text=Hola..."`
	Email      string `json:"email" example:"mailto:ventas@sangabriel.com?subject=..."`
	Icon       string `json:"icon" example:"🧻"`
	Price      string `json:"price" example:"$ 1.234,50"`
}

// Spread 두 쪽 펼침의 페이지 번호입니다 (0 기준). 오른쪽 페이지가 없으면 Right는 null입니다.
type Spread struct {
	Left  int  `json:"left" example:"4"`
	Right *int `json:"right" example:"5"`
}

// BookResponse 배치된 카탈로그 책과 요청한 위치의 펼침 정보입니다.
type BookResponse struct {
	Layout     string           `json:"layout" example:"sections"`
	TotalPages int              `json:"total_pages" example:"12"`
	Current    int              `json:"current" example:"4"`
	Direction  string           `json:"direction" example:"right"`
	Spread     Spread           `json:"spread"`
	Label      string           `json:"label" example:"Páginas 5-6 de 12"`
	Pages      []book.Page      `json:"pages"`
	Duplicates []book.Duplicate `json:"duplicates,omitempty"`
}
