package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories 카테고리 필터를 적용하지 않음을 나타내는 값
const AllCategories = "all"

// SortKey 상품 정렬 기준입니다.
type SortKey string

const (
	SortByName       SortKey = "nombre"
	SortByPriceAsc   SortKey = "precio-asc"
	SortByPriceDesc  SortKey = "precio-desc"
	SortByReferencia SortKey = "referencia"
)

// Valid 알려진 정렬 기준인지 확인합니다.
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByPriceAsc, SortByPriceDesc, SortByReferencia:
		return true
	}
	return false
}

// FilterByCategory 카테고리가 정확히 일치하는 상품만 반환합니다.
// category가 AllCategories이면 입력을 그대로 반환합니다.
func FilterByCategory(products []Product, category string) []Product {
	if category == AllCategories {
		return products
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Categoria == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SearchProducts 이름 또는 참조 코드에 검색어가 포함된 상품을 반환합니다 (대소문자 무시).
// 검색어가 비어 있거나 공백뿐이면 입력을 그대로 반환합니다.
func SearchProducts(products []Product, term string) []Product {
	if strings.TrimSpace(term) == "" {
		return products
	}

	needle := strings.ToLower(term)

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Nombre), needle) || strings.Contains(strings.ToLower(p.Referencia), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortProducts 입력의 복사본을 key 기준으로 안정 정렬하여 반환합니다.
// 이름과 참조 코드는 스페인어 정렬 규칙을 따릅니다. 알 수 없는 key는 정렬하지 않은 복사본을 반환합니다.
func SortProducts(products []Product, key SortKey) []Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []Product{}
	}

	switch key {
	case SortByName:
		c := newCollator()
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return c.CompareString(a.Nombre, b.Nombre)
		})
	case SortByReferencia:
		c := newCollator()
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return c.CompareString(a.Referencia, b.Referencia)
		})
	case SortByPriceAsc:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return a.Precio.Cmp(b.Precio)
		})
	case SortByPriceDesc:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return b.Precio.Cmp(a.Precio)
		})
	}

	return sorted
}

// newCollator Collator는 동시 사용이 안전하지 않으므로 정렬마다 새로 만듭니다.
func newCollator() *collate.Collator {
	return collate.New(language.Spanish)
}

// Query 목록 화면의 필터, 검색, 정렬 조건입니다.
type Query struct {
	Category string
	Search   string
	Sort     SortKey
}

// Apply 카테고리 필터, 검색, 정렬 순서로 조건을 적용합니다.
// Category가 비어 있으면 AllCategories로, Sort가 비어 있으면 이름순으로 간주합니다.
func (q Query) Apply(products []Product) []Product {
	category := q.Category
	if category == "" {
		category = AllCategories
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortByName
	}

	return SortProducts(SearchProducts(FilterByCategory(products, category), q.Search), sortKey)
}
