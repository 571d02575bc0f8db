package cart

import (
	"context"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	"github.com/darkkaiser/sangabriel-catalog/pkg/concurrency"
	"github.com/google/uuid"
)

// ErrInvalidCartID 장바구니 ID가 UUID 형식이 아닙니다.
var ErrInvalidCartID = apperrors.New(apperrors.InvalidInput, "Identificador de carrito inválido")

// Registry HTTP 요청마다 장바구니 ID로 Store를 열어 줍니다.
//
// Store는 요청마다 저장소에서 새로 불러오며, 같은 장바구니에 대한 작업은
// 이 프로세스 안에서 KeyedMutex로 직렬화됩니다. 프로세스 간 잠금은 없으므로
// 여러 인스턴스가 같은 장바구니를 동시에 수정하면 마지막 저장이 남습니다.
type Registry struct {
	store storage.Store
	locks *concurrency.KeyedMutex
	newID func() string
}

// NewRegistry 새로운 Registry를 생성합니다.
func NewRegistry(store storage.Store) *Registry {
	return &Registry{
		store: store,
		locks: concurrency.NewKeyedMutex(),
		newID: func() string { return uuid.NewString() },
	}
}

// NewID 새 장바구니 ID를 발급합니다.
func (r *Registry) NewID() string {
	return r.newID()
}

// Do id 장바구니를 열어 fn을 실행합니다. fn이 실행되는 동안 같은 장바구니에 대한 다른 작업은 대기합니다.
func (r *Registry) Do(ctx context.Context, id string, fn func(s *Store) error) error {
	id, err := NormalizeID(id)
	if err != nil {
		return err
	}

	return r.locks.WithLock(id, func() error {
		return fn(NewStore(ctx, NewKeyValuePersister(r.store, id)))
	})
}

// Snapshot id 장바구니의 현재 항목을 반환합니다.
func (r *Registry) Snapshot(ctx context.Context, id string) ([]Item, error) {
	var items []Item
	err := r.Do(ctx, id, func(s *Store) error {
		items = s.Items()
		return nil
	})
	return items, err
}

// Clear id 장바구니를 비웁니다. Store.Clear와 달리 저장 실패를 호출자에게 반환합니다.
func (r *Registry) Clear(ctx context.Context, id string) error {
	id, err := NormalizeID(id)
	if err != nil {
		return err
	}

	return r.locks.WithLock(id, func() error {
		return NewKeyValuePersister(r.store, id).Save(ctx, nil)
	})
}

// NormalizeID UUID 형식을 검사하고 소문자 표준 형식으로 바꿉니다.
func NormalizeID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidCartID
	}
	return parsed.String(), nil
}

// Summary 장바구니 응답 형식입니다.
type Summary struct {
	ID         string `json:"cart_id"`
	Items      []Item `json:"items"`
	TotalItems int    `json:"total_items"`
	TotalPrice string `json:"total_price"`
}

// Summarize Store의 현재 상태를 요약합니다.
func Summarize(id string, s *Store) Summary {
	items := s.Items()
	if items == nil {
		items = []Item{}
	}

	return Summary{
		ID:         id,
		Items:      items,
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice().StringFixed(2),
	}
}
