package book

import (
	"slices"
	"strings"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
)

// PageType 페이지 종류입니다.
type PageType string

const (
	PageCover         PageType = "cover"
	PageAbout         PageType = "about"
	PageIndex         PageType = "index"
	PageCategoryIntro PageType = "category-intro"
	PageProducts      PageType = "products"
	PageContact       PageType = "contact"
)

// Page 책의 페이지 하나입니다. Type에 따라 채워지는 필드가 다릅니다.
//   - index: Sections
//   - category-intro: Category, Icon, ProductCount
//   - products: Category, Icon, Products
type Page struct {
	Type         PageType          `json:"type"`
	Category     string            `json:"category,omitempty"`
	Icon         string            `json:"icon,omitempty"`
	ProductCount int               `json:"productCount,omitempty"`
	Products     []catalog.Product `json:"products,omitempty"`
	Sections     []IndexEntry      `json:"sections,omitempty"`
}

// IndexEntry 목차의 항목입니다. 페이지 번호는 표지를 1로 하는 사람 기준 번호입니다.
type IndexEntry struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
	StartPage    int    `json:"startPage"`
	EndPage      int    `json:"endPage"`
}

// Group 이름이 붙은 상품 묶음입니다.
type Group struct {
	Name     string            `json:"name"`
	Products []catalog.Product `json:"products"`
}

// Duplicate 둘 이상의 섹션에 배치된 상품입니다.
type Duplicate struct {
	Referencia string   `json:"referencia"`
	Sections   []string `json:"sections"`
}

// Book 배치 결과입니다. 상품 목록이 바뀌면 전체를 다시 계산합니다.
type Book struct {
	Layout     string      `json:"layout"`
	Pages      []Page      `json:"pages"`
	Groups     []Group     `json:"groups"`
	Duplicates []Duplicate `json:"duplicates,omitempty"`
}

// TotalPages 전체 페이지 수입니다.
func (b Book) TotalPages() int {
	return len(b.Pages)
}

// Build 상품 목록을 배치 전략에 따라 페이지로 나눕니다.
func Build(products []catalog.Product, l Layout) Book {
	var groups []Group
	switch l.Grouping {
	case GroupByCategory:
		groups = GroupByCategoria(products)
	default:
		groups = MatchSections(products, l.Sections)
	}

	chunk := l.chunkSize()

	pages := []Page{{Type: PageCover}}
	if l.AboutPage {
		pages = append(pages, Page{Type: PageAbout})
	}
	if l.IndexPage {
		pages = append(pages, Page{Type: PageIndex, Sections: indexEntries(groups, l)})
	}

	for _, g := range groups {
		icon := catalog.CategoryIcon(g.Name)
		if l.CategoryIntro {
			pages = append(pages, Page{
				Type:         PageCategoryIntro,
				Category:     g.Name,
				Icon:         icon,
				ProductCount: len(g.Products),
			})
		}
		for products := range slices.Chunk(g.Products, chunk) {
			pages = append(pages, Page{
				Type:     PageProducts,
				Category: g.Name,
				Icon:     icon,
				Products: products,
			})
		}
	}

	pages = append(pages, Page{Type: PageContact})

	b := Book{
		Layout: l.Name,
		Pages:  pages,
		Groups: groups,
	}
	if l.Grouping == GroupBySections {
		b.Duplicates = FindDuplicates(groups)
	}

	return b
}

// indexEntries 그룹별 시작, 끝 페이지 번호를 계산합니다.
// 시작 번호는 앞 그룹의 끝 번호 + 1이고, 첫 그룹은 고정 페이지 바로 다음입니다.
func indexEntries(groups []Group, l Layout) []IndexEntry {
	entries := make([]IndexEntry, 0, len(groups))

	current := l.leadingPages()
	for _, g := range groups {
		pages := ceilDiv(len(g.Products), l.chunkSize())
		if l.CategoryIntro {
			pages++
		}

		entries = append(entries, IndexEntry{
			Name:         g.Name,
			ProductCount: len(g.Products),
			StartPage:    current + 1,
			EndPage:      current + pages,
		})
		current += pages
	}

	return entries
}

// MatchSections 섹션마다 토큰 순서대로, 참조 코드에 토큰이 포함된(대소문자 무시) 첫 상품을 모읍니다.
//
// 이미 같은 섹션에 들어간 상품은 다시 넣지 않습니다. 섹션 사이의 중복은 제거하지 않으며
// FindDuplicates로 확인할 수 있습니다. 상품이 하나도 없는 섹션은 결과에서 빠집니다.
func MatchSections(products []catalog.Product, sections []Section) []Group {
	lowerRefs := make([]string, len(products))
	for i, p := range products {
		lowerRefs[i] = strings.ToLower(p.Referencia)
	}

	groups := make([]Group, 0, len(sections))
	for _, section := range sections {
		matched := make([]catalog.Product, 0, len(section.Refs))
		used := make(map[int]bool, len(section.Refs))

		for _, token := range section.Refs {
			token = strings.ToLower(token)
			for i, ref := range lowerRefs {
				if strings.Contains(ref, token) {
					if !used[i] {
						used[i] = true
						matched = append(matched, products[i])
					}
					break
				}
			}
		}

		if len(matched) > 0 {
			groups = append(groups, Group{Name: section.Name, Products: matched})
		}
	}

	return groups
}

// GroupByCategoria 카테고리별로 묶습니다. 그룹 순서는 카테고리가 처음 등장한 순서입니다.
func GroupByCategoria(products []catalog.Product) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, p := range products {
		i, ok := index[p.Categoria]
		if !ok {
			i = len(groups)
			index[p.Categoria] = i
			groups = append(groups, Group{Name: p.Categoria})
		}
		groups[i].Products = append(groups[i].Products, p)
	}

	return groups
}

// FindDuplicates 둘 이상의 그룹에 들어간 상품을 처음 등장한 순서대로 반환합니다.
func FindDuplicates(groups []Group) []Duplicate {
	var order []string
	placements := make(map[string][]string)

	for _, g := range groups {
		for _, p := range g.Products {
			if _, ok := placements[p.Referencia]; !ok {
				order = append(order, p.Referencia)
			}
			placements[p.Referencia] = append(placements[p.Referencia], g.Name)
		}
	}

	var duplicates []Duplicate
	for _, ref := range order {
		if names := placements[ref]; len(names) > 1 {
			duplicates = append(duplicates, Duplicate{Referencia: ref, Sections: names})
		}
	}

	return duplicates
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
