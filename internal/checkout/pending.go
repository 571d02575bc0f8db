package checkout

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
)

// PendingOrderKeyPrefix 대기 주문 저장 키의 접두사입니다. 뒤에 장바구니 ID(없으면 주문 참조 번호)가 붙습니다.
const PendingOrderKeyPrefix = "sangabriel-pending-order:"

// PendingOrders 결제 완료 전 주문을 키-값 저장소에 보관합니다.
type PendingOrders struct {
	store storage.Store
}

// NewPendingOrders 새로운 PendingOrders를 생성합니다.
func NewPendingOrders(store storage.Store) *PendingOrders {
	return &PendingOrders{store: store}
}

// Key 주문의 저장 키입니다.
func (p *PendingOrders) Key(id string) string {
	return PendingOrderKeyPrefix + id
}

// Save 주문을 저장합니다. 같은 키의 이전 주문은 덮어씁니다.
func (p *PendingOrders) Save(ctx context.Context, id string, order Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "대기 주문을 JSON으로 변환하는 데 실패했습니다")
	}
	return p.store.Set(ctx, p.Key(id), data, 0)
}

// Load 저장된 주문을 불러옵니다. 없으면 false를 반환합니다.
func (p *PendingOrders) Load(ctx context.Context, id string) (Order, bool, error) {
	data, err := p.store.Get(ctx, p.Key(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Order{}, false, nil
		}
		return Order{}, false, err
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return Order{}, false, apperrors.Wrap(err, apperrors.ParsingFailed, "저장된 대기 주문을 해석할 수 없습니다")
	}
	return order, true, nil
}

// Delete 주문을 삭제합니다. 없는 주문이면 아무 일도 하지 않습니다.
func (p *PendingOrders) Delete(ctx context.Context, id string) error {
	return p.store.Delete(ctx, p.Key(id))
}
