package handler

import (
	"net/http"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/validator"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/storefront/model/request"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// CreateCartHandler godoc
// @Summary 장바구니 생성
// @Description 새 장바구니 ID를 발급합니다. 장바구니는 첫 상품이 담길 때 저장소에 기록됩니다.
// @Tags Cart
// @Produce json
// @Success 201 {object} response.CartCreatedResponse "장바구니 ID"
// @Router /api/carts [post]
func (h *Handler) CreateCartHandler(c echo.Context) error {
	id := h.carts.NewID()

	h.log(c).WithField("cart_id", id).Debug("장바구니 ID 발급")

	return c.JSON(http.StatusCreated, response.CartCreatedResponse{CartID: id})
}

// GetCartHandler godoc
// @Summary 장바구니 조회
// @Description 장바구니의 항목과 총 수량, 총액을 반환합니다. 저장된 적 없는 장바구니는 빈 장바구니입니다.
// @Tags Cart
// @Produce json
// @Param id path string true "장바구니 ID (UUID)"
// @Success 200 {object} cart.Summary "장바구니"
// @Failure 400 {object} response.ErrorResponse "잘못된 장바구니 ID"
// @Router /api/carts/{id} [get]
func (h *Handler) GetCartHandler(c echo.Context) error {
	return h.withCart(c, func(*cart.Store) error { return nil })
}

// AddCartItemHandler godoc
// @Summary 장바구니에 상품 담기
// @Description 카탈로그 스냅샷에서 참조 코드로 상품을 찾아 담습니다. 이미 담긴 상품이면 수량을 더합니다.
// @Description 가격과 상품 정보는 요청이 아니라 카탈로그에서 가져옵니다.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "장바구니 ID (UUID)"
// @Param item body request.AddCartItemRequest true "담을 상품"
// @Success 200 {object} cart.Summary "장바구니"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 404 {object} response.ErrorResponse "카탈로그에 없는 상품"
// @Failure 503 {object} response.ErrorResponse "카탈로그를 불러올 수 없음"
// @Router /api/carts/{id}/items [post]
func (h *Handler) AddCartItemHandler(c echo.Context) error {
	req := new(request.AddCartItemRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	snapshot, err := h.catalogs.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	product, ok := catalog.FindByReferencia(snapshot.Products, req.Referencia)
	if !ok {
		return NewErrProductNotFound(req.Referencia)
	}

	return h.withCart(c, func(s *cart.Store) error {
		s.AddItem(c.Request().Context(), product, req.Cantidad)

		h.log(c).WithFields(applog.Fields{
			"referencia": product.Referencia,
			"quantity":   s.Quantity(product.Referencia),
		}).Debug("장바구니에 상품 담기")

		return nil
	})
}

// UpdateCartItemHandler godoc
// @Summary 장바구니 상품 수량 변경
// @Description 담긴 상품의 수량을 지정합니다. 0 이하이면 상품을 뺍니다.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "장바구니 ID (UUID)"
// @Param ref path string true "상품 참조 코드"
// @Param item body request.UpdateCartItemRequest true "새 수량"
// @Success 200 {object} cart.Summary "장바구니"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 404 {object} response.ErrorResponse "장바구니에 없는 상품"
// @Router /api/carts/{id}/items/{ref} [put]
func (h *Handler) UpdateCartItemHandler(c echo.Context) error {
	req := new(request.UpdateCartItemRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	ref := c.Param("ref")
	return h.withCart(c, func(s *cart.Store) error {
		if !s.Contains(ref) {
			return NewErrProductNotFound(ref)
		}
		s.UpdateQuantity(c.Request().Context(), ref, req.Cantidad)
		return nil
	})
}

// RemoveCartItemHandler godoc
// @Summary 장바구니에서 상품 빼기
// @Description 담긴 상품을 뺍니다. 담겨 있지 않은 상품이면 아무 일도 하지 않습니다.
// @Tags Cart
// @Produce json
// @Param id path string true "장바구니 ID (UUID)"
// @Param ref path string true "상품 참조 코드"
// @Success 200 {object} cart.Summary "장바구니"
// @Failure 400 {object} response.ErrorResponse "잘못된 장바구니 ID"
// @Router /api/carts/{id}/items/{ref} [delete]
func (h *Handler) RemoveCartItemHandler(c echo.Context) error {
	ref := c.Param("ref")
	return h.withCart(c, func(s *cart.Store) error {
		s.RemoveItem(c.Request().Context(), ref)
		return nil
	})
}

// ClearCartHandler godoc
// @Summary 장바구니 비우기
// @Tags Cart
// @Produce json
// @Param id path string true "장바구니 ID (UUID)"
// @Success 200 {object} cart.Summary "빈 장바구니"
// @Failure 400 {object} response.ErrorResponse "잘못된 장바구니 ID"
// @Router /api/carts/{id} [delete]
func (h *Handler) ClearCartHandler(c echo.Context) error {
	return h.withCart(c, func(s *cart.Store) error {
		s.Clear(c.Request().Context())
		return nil
	})
}

// withCart 경로의 장바구니를 열어 fn을 실행하고, 실행 후 상태를 응답합니다.
func (h *Handler) withCart(c echo.Context, fn func(s *cart.Store) error) error {
	id, err := cart.NormalizeID(c.Param("id"))
	if err != nil {
		return err
	}

	var summary cart.Summary
	err = h.carts.Do(c.Request().Context(), id, func(s *cart.Store) error {
		if err := fn(s); err != nil {
			return err
		}
		summary = cart.Summarize(id, s)
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
