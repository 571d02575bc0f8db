package handler

import (
	"net/http"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/book"
	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/httputil"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/storefront/model/request"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/erp"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// timestampLayout 오류 응답의 timestamp 형식 (밀리초까지, UTC)
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// GetCatalogHandler godoc
// @Summary 카탈로그 조회
// @Description ERP에서 가격표와 상품 목록을 받아 정규화한 카탈로그를 반환합니다.
// @Description 응답은 항상 최신이어야 하므로 캐시 금지 헤더가 붙습니다.
// @Description
// @Description ERP 호출이 재시도 후에도 실패하면 503과 함께 code=ERP_CONNECTION_ERROR를 반환합니다.
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.Response "카탈로그"
// @Failure 503 {object} response.ErrorResponse "ERP 연결 실패"
// @Router /api/catalog [get]
func (h *Handler) GetCatalogHandler(c echo.Context) error {
	resp, err := h.catalogs.Live(c.Request().Context())
	if err != nil {
		h.log(c).WithField("error", err.Error()).Error("ERP 카탈로그 조회 실패")

		c.Response().Header().Set(echo.HeaderCacheControl, constants.CacheControlNoStoreOnly)
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
			Error:     erp.UserMessage(err),
			Code:      erp.ErrorCode,
			Timestamp: time.Now().UTC().Format(timestampLayout),
		})
	}

	h.log(c).WithFields(applog.Fields{
		"products":   len(resp.Products),
		"categories": len(resp.Categories),
	}).Debug("ERP 카탈로그 조회 성공")

	httputil.NoStore(c)
	return c.JSON(http.StatusOK, resp)
}

// ListProductsHandler godoc
// @Summary 상품 목록 조회
// @Description 카탈로그 스냅샷에 카테고리 필터, 검색, 정렬을 차례로 적용한 상품 목록을 반환합니다.
// @Description 검색은 이름과 참조 코드에서 대소문자 구분 없이 부분 일치로 찾습니다.
// @Tags Catalog
// @Produce json
// @Param category query string false "카테고리 (all이면 전체)"
// @Param q query string false "검색어"
// @Param sort query string false "정렬 기준" Enums(nombre, precio-asc, precio-desc, referencia)
// @Success 200 {object} response.ProductsResponse "상품 목록"
// @Failure 400 {object} response.ErrorResponse "알 수 없는 정렬 기준"
// @Failure 503 {object} response.ErrorResponse "카탈로그를 불러올 수 없음"
// @Router /api/catalog/products [get]
func (h *Handler) ListProductsHandler(c echo.Context) error {
	q := new(request.ProductsQuery)
	if err := c.Bind(q); err != nil {
		return NewErrInvalidQuery()
	}

	sortKey := catalog.SortKey(q.Sort)
	if sortKey != "" && !sortKey.Valid() {
		return NewErrInvalidSort(q.Sort)
	}

	snapshot, err := h.catalogs.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	products := catalog.Query{Category: q.Category, Search: q.Search, Sort: sortKey}.Apply(snapshot.Products)
	if products == nil {
		products = []catalog.Product{}
	}

	return c.JSON(http.StatusOK, response.ProductsResponse{
		Products:   products,
		Total:      len(products),
		Categories: snapshot.Categories,
		Currency:   snapshot.Currency,
	})
}

// ProductLinksHandler godoc
// @Summary 상품 견적 문의 링크
// @Description 상품 하나에 대한 WhatsApp, 이메일 견적 문의 링크와 카테고리 아이콘, 표시용 가격을 반환합니다.
// @Tags Catalog
// @Produce json
// @Param ref path string true "상품 참조 코드"
// @Success 200 {object} response.ProductLinksResponse "문의 링크"
// @Failure 404 {object} response.ErrorResponse "상품 없음"
// @Failure 503 {object} response.ErrorResponse "카탈로그를 불러올 수 없음"
// @Router /api/catalog/products/{ref}/links [get]
func (h *Handler) ProductLinksHandler(c echo.Context) error {
	ref := c.Param("ref")

	snapshot, err := h.catalogs.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	p, ok := catalog.FindByReferencia(snapshot.Products, ref)
	if !ok {
		return NewErrProductNotFound(ref)
	}

	return c.JSON(http.StatusOK, response.ProductLinksResponse{
		Referencia: p.Referencia,
		WhatsApp:   catalog.WhatsAppLink(p, h.contact.WhatsAppPhone),
		Email:      catalog.EmailLink(p, h.contact.SalesEmail),
		Icon:       catalog.CategoryIcon(p.Categoria),
		Price:      catalog.FormatPrice(p.Precio, p.Moneda),
	})
}

// GetBookHandler godoc
// @Summary 카탈로그 책 조회
// @Description 카탈로그 스냅샷을 인쇄용 책의 페이지 순서로 배치하고, 요청한 페이지로 넘긴 펼침 정보를 함께 반환합니다.
// @Description
// @Description - sections: 표지, 소개, 목차, 섹션별 상품 페이지(4개씩), 연락처
// @Description - categories: 표지, 카테고리별 소개와 상품 페이지(2개씩), 연락처
// @Description
// @Description 오른쪽으로 넘길 때 마지막 펼침은 끝에서 두 번째 페이지에 맞춥니다.
// @Tags Catalog
// @Produce json
// @Param layout query string false "배치" Enums(sections, categories)
// @Param page query int false "펼칠 페이지 (0 기준)"
// @Param direction query string false "넘김 방향" Enums(left, right)
// @Success 200 {object} response.BookResponse "책"
// @Failure 400 {object} response.ErrorResponse "알 수 없는 배치 또는 범위를 벗어난 페이지"
// @Failure 503 {object} response.ErrorResponse "카탈로그를 불러올 수 없음"
// @Router /api/catalog/book [get]
func (h *Handler) GetBookHandler(c echo.Context) error {
	q := new(request.BookQuery)
	if err := c.Bind(q); err != nil {
		return NewErrInvalidQuery()
	}

	if q.Layout == "" {
		q.Layout = h.defaultLayout
	}
	layout, err := book.LayoutByName(q.Layout)
	if err != nil {
		return err
	}

	snapshot, err := h.catalogs.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	b := book.Build(snapshot.Products, layout)
	cursor := book.NewCursor(b.TotalPages())

	if q.Page != 0 {
		dir := cursor.DirectionTo(q.Page)
		if q.Direction != "" {
			parsed, ok := book.ParseDirection(q.Direction)
			if !ok {
				return NewErrInvalidDirection(q.Direction)
			}
			dir = parsed
		}

		if !cursor.Navigate(q.Page, dir) {
			return NewErrInvalidPage(q.Page, b.TotalPages())
		}
	}

	left, right := cursor.Spread()
	spread := response.Spread{Left: left}
	if right >= 0 {
		spread.Right = &right
	}

	return c.JSON(http.StatusOK, response.BookResponse{
		Layout:     b.Layout,
		TotalPages: b.TotalPages(),
		Current:    cursor.Current(),
		Direction:  cursor.Direction().String(),
		Spread:     spread,
		Label:      cursor.Label(),
		Pages:      b.Pages,
		Duplicates: b.Duplicates,
	})
}
