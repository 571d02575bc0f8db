// Package catalog 상품 카탈로그의 데이터 모델과 목록 변환 함수를 제공합니다.
//
// 이 패키지의 함수는 모두 부수 효과가 없으며 입력 슬라이스를 변경하지 않습니다.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency 상품 목록이 비어 있어 통화를 알 수 없을 때 사용하는 통화 코드
const DefaultCurrency = "ARS"

func init() {
	// ERP와 스토어프런트는 가격을 JSON 숫자로 주고받습니다.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product ERP가 제공하는 상품 하나입니다. Referencia가 상품의 고유 키입니다.
type Product struct {
	Referencia string          `json:"referencia"`
	Nombre     string          `json:"nombre"`
	Categoria  string          `json:"categoria"`
	Precio     decimal.Decimal `json:"precio" swaggertype:"number"`
	Moneda     string          `json:"moneda"`
	Imagen     *string         `json:"imagen"`
}

// Response 정규화된 카탈로그 응답입니다.
type Response struct {
	Products      []Product `json:"products"`
	Categories    []string  `json:"categories"`
	PriceListName string    `json:"priceListName"`
	LastUpdated   string    `json:"lastUpdated"`
	Currency      string    `json:"currency"`
}

// NewResponse 상품 목록으로부터 카테고리와 통화를 계산하여 응답을 만듭니다.
// 통화는 첫 번째 상품의 통화를 따르고, 상품이 없으면 DefaultCurrency입니다.
func NewResponse(products []Product, priceListName string, now time.Time) Response {
	currency := DefaultCurrency
	if len(products) > 0 && products[0].Moneda != "" {
		currency = products[0].Moneda
	}

	if products == nil {
		products = []Product{}
	}

	return Response{
		Products:      products,
		Categories:    Categories(products),
		PriceListName: priceListName,
		LastUpdated:   now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Currency:      currency,
	}
}

// Categories 상품에 등장하는 카테고리를 처음 등장한 순서대로 중복 없이 반환합니다.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Categoria]; ok {
			continue
		}
		seen[p.Categoria] = struct{}{}
		categories = append(categories, p.Categoria)
	}
	return categories
}

// FindByReferencia 참조 코드가 정확히 일치하는 상품을 찾습니다.
func FindByReferencia(products []Product, referencia string) (Product, bool) {
	for _, p := range products {
		if p.Referencia == referencia {
			return p, true
		}
	}
	return Product{}, false
}
