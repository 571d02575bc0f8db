package cart

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

// KeyPrefix 장바구니 저장 키의 접두어
const KeyPrefix = "sangabriel-cart:"

// Persister 장바구니 목록을 불러오고 저장합니다.
type Persister interface {
	// Load 저장된 목록을 반환합니다. 저장된 것이 없으면 빈 목록과 nil을 반환합니다.
	Load(ctx context.Context) ([]Item, error)

	// Save 목록 전체를 덮어씁니다.
	Save(ctx context.Context, items []Item) error
}

// KeyValuePersister storage.Store의 키 하나에 장바구니를 JSON으로 저장합니다.
type KeyValuePersister struct {
	store storage.Store
	key   string
}

var _ Persister = (*KeyValuePersister)(nil)

// NewKeyValuePersister cartID 장바구니를 저장할 Persister를 생성합니다.
func NewKeyValuePersister(store storage.Store, cartID string) *KeyValuePersister {
	return &KeyValuePersister{
		store: store,
		key:   KeyPrefix + cartID,
	}
}

// Key 저장 키를 반환합니다.
func (p *KeyValuePersister) Key() string {
	return p.key
}

func (p *KeyValuePersister) Load(ctx context.Context) ([]Item, error) {
	data, err := p.store.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "저장된 장바구니 데이터를 해석할 수 없습니다")
	}

	return items, nil
}

func (p *KeyValuePersister) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "장바구니 데이터 직렬화 실패")
	}

	return p.store.Set(ctx, p.key, data, 0)
}

// Describe 로그에 남길 식별 정보를 반환합니다.
func (p *KeyValuePersister) Describe() applog.Fields {
	return applog.Fields{"key": p.key}
}
