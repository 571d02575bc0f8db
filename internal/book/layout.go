// Package book 상품 목록을 인쇄용 카탈로그 책의 페이지 순서로 배치하고, 두 쪽씩 넘겨 보는 커서를 제공합니다.
//
// 섹션 기반 배치와 카테고리 기반 배치는 하나의 Layout으로 표현되며,
// 그룹을 만드는 방식(Grouping)과 페이지당 상품 수(ChunkSize), 앞뒤 고정 페이지 구성만 다릅니다.
package book

import (
	"fmt"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

// Grouping 상품을 그룹으로 묶는 방식입니다.
type Grouping int

const (
	// GroupBySections 고정된 섹션 표의 참조 코드 토큰으로 묶습니다.
	GroupBySections Grouping = iota

	// GroupByCategory 상품의 categoria 값으로 묶습니다 (처음 등장한 순서).
	GroupByCategory
)

func (g Grouping) String() string {
	switch g {
	case GroupBySections:
		return "sections"
	case GroupByCategory:
		return "categories"
	}
	return fmt.Sprintf("Grouping(%d)", int(g))
}

// Section 이름과 참조 코드 토큰 목록입니다. 토큰 순서가 섹션 안의 상품 순서가 됩니다.
type Section struct {
	Name string   `json:"name"`
	Refs []string `json:"refs"`
}

// Layout 페이지 배치 전략입니다.
type Layout struct {
	Name     string
	Grouping Grouping

	// Sections GroupBySections일 때 사용하는 섹션 표
	Sections []Section

	// ChunkSize 상품 페이지 하나에 들어가는 상품 수
	ChunkSize int

	// AboutPage 표지 다음에 회사 소개 페이지를 넣습니다.
	AboutPage bool

	// IndexPage 상품 페이지 앞에 그룹별 페이지 범위를 담은 목차를 넣습니다.
	IndexPage bool

	// CategoryIntro 그룹마다 상품 페이지 앞에 소개 페이지를 넣습니다.
	CategoryIntro bool
}

const (
	LayoutSections   = "sections"
	LayoutCategories = "categories"
)

// DefaultSections 인쇄용 카탈로그의 섹션 표입니다.
var DefaultSections = []Section{
	{Name: "Línea Clásica", Refs: []string{"3", "6", "2", "5"}},
	{Name: "Línea Extra Suave", Refs: []string{"9", "10", "11"}},
	{Name: "Línea San Marino", Refs: []string{"12", "13", "14"}},
	{Name: "Individual Natural", Refs: []string{"1", "7", "4", "8"}},
	{Name: "Rollos Blancos", Refs: []string{"15", "18", "17", "16", "19", "20", "22", "26", "25"}},
	{Name: "Otros Productos", Refs: []string{"24", "23"}},
	{Name: "Film Stretch", Refs: []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}},
}

// SectionLayout 표지, 소개, 목차, 섹션별 상품 페이지(4개씩), 연락처 순의 배치입니다.
func SectionLayout() Layout {
	return Layout{
		Name:      LayoutSections,
		Grouping:  GroupBySections,
		Sections:  DefaultSections,
		ChunkSize: 4,
		AboutPage: true,
		IndexPage: true,
	}
}

// CategoryLayout 표지, 카테고리별 소개 페이지와 상품 페이지(2개씩), 연락처 순의 배치입니다.
func CategoryLayout() Layout {
	return Layout{
		Name:          LayoutCategories,
		Grouping:      GroupByCategory,
		ChunkSize:     2,
		CategoryIntro: true,
	}
}

// LayoutByName 이름으로 배치를 찾습니다.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case LayoutSections:
		return SectionLayout(), nil
	case LayoutCategories:
		return CategoryLayout(), nil
	}
	return Layout{}, apperrors.Newf(apperrors.InvalidInput, "Diseño de catálogo desconocido: %s", name)
}

// leadingPages 첫 그룹의 페이지보다 앞에 오는 고정 페이지 수입니다.
func (l Layout) leadingPages() int {
	n := 1 // 표지
	if l.AboutPage {
		n++
	}
	if l.IndexPage {
		n++
	}
	return n
}

func (l Layout) chunkSize() int {
	if l.ChunkSize <= 0 {
		return 1
	}
	return l.ChunkSize
}
