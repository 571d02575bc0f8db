// Package cart 장바구니 상태와 영속화를 담당합니다.
//
// Store는 상품별 수량 목록을 관리하며, 변경이 일어날 때마다 Persister로 전체 목록을 저장합니다.
// 저장 실패는 로그로만 남기고 호출자에게 전파하지 않습니다.
package cart

import (
	"context"
	"slices"
	"sync"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/shopspring/decimal"
)

const component = "cart.store"

// MaxQuantity 항목 하나에 담을 수 있는 최대 수량입니다. 더 큰 수량은 이 값으로 맞춥니다.
const MaxQuantity = 9999

// Item 장바구니 항목입니다. 같은 Referencia의 항목은 하나만 존재하고 Quantity는 1 이상 MaxQuantity 이하입니다.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal 단가와 수량의 곱입니다.
func (i Item) Subtotal() decimal.Decimal {
	return i.Product.Precio.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Store 장바구니 하나의 상태입니다. 모든 메서드는 동시 호출에 안전합니다.
type Store struct {
	mu    sync.RWMutex
	items []Item

	persister Persister
	logFields applog.Fields
}

// NewStore 저장된 장바구니를 불러와 Store를 생성합니다.
//
// 불러오기에 실패하거나 저장된 데이터가 손상되어 있으면 빈 장바구니로 시작합니다.
// persister가 nil이면 메모리에만 보관합니다.
func NewStore(ctx context.Context, persister Persister) *Store {
	s := &Store{
		persister: persister,
		logFields: applog.Fields{},
	}
	if d, ok := persister.(interface{ Describe() applog.Fields }); ok {
		s.logFields = d.Describe()
	}

	if persister == nil {
		return s
	}

	items, err := persister.Load(ctx)
	if err != nil {
		applog.WithComponentAndFields(component, s.fields(applog.Fields{
			"error": err.Error(),
		})).Warn("저장된 장바구니 불러오기 실패: 빈 장바구니로 시작합니다")

		return s
	}

	s.items = sanitize(items)

	return s
}

// sanitize 수량이 0 이하인 항목을 버리고 같은 참조 코드의 항목을 합칩니다. 수량은 MaxQuantity를 넘지 않습니다.
func sanitize(items []Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.Product.Referencia == "" {
			continue
		}
		if idx := indexOf(result, item.Product.Referencia); idx >= 0 {
			result[idx].Quantity = addQuantity(result[idx].Quantity, item.Quantity)
			continue
		}
		item.Quantity = min(item.Quantity, MaxQuantity)
		result = append(result, item)
	}
	return result
}

// addQuantity 두 양수 수량의 합을 MaxQuantity까지만 더합니다.
func addQuantity(current, delta int) int {
	if delta >= MaxQuantity-current {
		return MaxQuantity
	}
	return current + delta
}

func indexOf(items []Item, referencia string) int {
	return slices.IndexFunc(items, func(i Item) bool {
		return i.Product.Referencia == referencia
	})
}

// AddItem 상품을 담습니다. 이미 담긴 상품이면 수량을 더합니다. quantity가 0 이하이면 1로 간주하고,
// 합계가 MaxQuantity를 넘으면 MaxQuantity로 맞춥니다.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOf(s.items, product.Referencia); idx >= 0 {
		s.items[idx].Quantity = addQuantity(s.items[idx].Quantity, quantity)
	} else {
		s.items = append(s.items, Item{Product: product, Quantity: min(quantity, MaxQuantity)})
	}

	s.persistLocked(ctx)
}

// RemoveItem 상품을 뺍니다. 없는 상품이면 아무 일도 하지 않습니다.
func (s *Store) RemoveItem(ctx context.Context, referencia string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(ctx, referencia)
}

func (s *Store) removeLocked(ctx context.Context, referencia string) {
	idx := indexOf(s.items, referencia)
	if idx < 0 {
		return
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	s.persistLocked(ctx)
}

// UpdateQuantity 수량을 지정합니다. quantity가 0 이하이면 상품을 빼고, MaxQuantity를 넘으면 MaxQuantity로 맞춥니다.
// 없는 상품이면 아무 일도 하지 않습니다.
func (s *Store) UpdateQuantity(ctx context.Context, referencia string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, referencia)
		return
	}

	idx := indexOf(s.items, referencia)
	if idx < 0 {
		return
	}

	s.items[idx].Quantity = min(quantity, MaxQuantity)
	s.persistLocked(ctx)
}

// Clear 장바구니를 비웁니다.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked(ctx)
}

// Items 항목 목록의 복사본을 담은 순서대로 반환합니다.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalItems 수량의 합입니다.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 단가×수량의 합입니다.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return totalPrice(s.items)
}

// Contains 상품이 담겨 있는지 확인합니다.
func (s *Store) Contains(referencia string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return indexOf(s.items, referencia) >= 0
}

// Quantity 담긴 수량을 반환합니다. 없으면 0입니다.
func (s *Store) Quantity(referencia string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := indexOf(s.items, referencia); idx >= 0 {
		return s.items[idx].Quantity
	}
	return 0
}

// persistLocked 호출자는 s.mu를 잡고 있어야 합니다.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}

	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)

	if err := s.persister.Save(ctx, snapshot); err != nil {
		applog.WithComponentAndFields(component, s.fields(applog.Fields{
			"items": len(snapshot),
			"error": err.Error(),
		})).Error("장바구니 저장 실패")
	}
}

func (s *Store) fields(extra applog.Fields) applog.Fields {
	merged := make(applog.Fields, len(s.logFields)+len(extra))
	for k, v := range s.logFields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func totalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
