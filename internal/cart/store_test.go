package cart

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProduct(ref string, precio string) catalog.Product {
	return catalog.Product{
		Referencia: ref,
		Nombre:     "Producto " + ref,
		Categoria:  "Papel",
		Precio:     decimal.RequireFromString(precio),
		Moneda:     "ARS",
	}
}

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(context.Background(), NewKeyValuePersister(storage.NewMemoryStore(), "test"))
}

func TestStore_AddItem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("같은 상품은 수량 합산", func(t *testing.T) {
		t.Parallel()

		s := newMemoryStore(t)
		p := testProduct("PH-300", "100")

		s.AddItem(ctx, p, 2)
		s.AddItem(ctx, p, 3)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, 5, s.Quantity("PH-300"))
	})

	t.Run("0 이하 수량은 1로 간주", func(t *testing.T) {
		t.Parallel()

		s := newMemoryStore(t)
		s.AddItem(ctx, testProduct("A", "1"), 0)
		s.AddItem(ctx, testProduct("B", "1"), -4)

		assert.Equal(t, 1, s.Quantity("A"))
		assert.Equal(t, 1, s.Quantity("B"))
	})

	t.Run("담은 순서 유지", func(t *testing.T) {
		t.Parallel()

		s := newMemoryStore(t)
		for _, ref := range []string{"C", "A", "B", "A"} {
			s.AddItem(ctx, testProduct(ref, "1"), 1)
		}

		var refs []string
		for _, item := range s.Items() {
			refs = append(refs, item.Product.Referencia)
		}
		assert.Equal(t, []string{"C", "A", "B"}, refs)
	})
}

func TestStore_RemoveAndUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s := newMemoryStore(t)
	s.AddItem(ctx, testProduct("A", "10"), 1)
	s.AddItem(ctx, testProduct("B", "20"), 2)

	s.UpdateQuantity(ctx, "B", 7)
	assert.Equal(t, 7, s.Quantity("B"))

	s.UpdateQuantity(ctx, "NOPE", 5)
	assert.False(t, s.Contains("NOPE"), "없는 상품의 수량 변경은 무시")
	assert.Len(t, s.Items(), 2)

	s.UpdateQuantity(ctx, "B", 0)
	assert.False(t, s.Contains("B"), "수량 0은 삭제")

	s.RemoveItem(ctx, "NOPE")
	s.RemoveItem(ctx, "A")
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Quantity("A"))
}

func TestStore_Totals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s := newMemoryStore(t)
	s.AddItem(ctx, testProduct("A", "1500.50"), 2)
	s.AddItem(ctx, testProduct("B", "0.10"), 3)

	assert.Equal(t, 5, s.TotalItems())
	assert.True(t, decimal.RequireFromString("3001.30").Equal(s.TotalPrice()), s.TotalPrice().String())

	s.Clear(ctx)
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestStore_ItemsIsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s := newMemoryStore(t)
	s.AddItem(ctx, testProduct("A", "1"), 1)

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Quantity("A"))
}

// TestStore_Invariants 임의의 조작 순서 뒤에도 참조 코드 중복과 0 이하 수량이 없어야 합니다.
func TestStore_Invariants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(1, 2))
	refs := []string{"A", "B", "C", "D"}

	s := NewStore(ctx, nil)
	for range 2000 {
		ref := refs[rng.IntN(len(refs))]
		switch rng.IntN(4) {
		case 0:
			s.AddItem(ctx, testProduct(ref, "1"), rng.IntN(5)-1)
		case 1:
			s.RemoveItem(ctx, ref)
		case 2:
			s.UpdateQuantity(ctx, ref, rng.IntN(6)-2)
		case 3:
			if rng.IntN(20) == 0 {
				s.Clear(ctx)
			}
		}

		seen := map[string]bool{}
		for _, item := range s.Items() {
			require.False(t, seen[item.Product.Referencia], "중복 참조 코드: %s", item.Product.Referencia)
			require.Positive(t, item.Quantity)
			require.LessOrEqual(t, item.Quantity, MaxQuantity)
			seen[item.Product.Referencia] = true
		}
	}

	t.Run("큰 수량을 더해도 넘치지 않음", func(t *testing.T) {
		t.Parallel()

		s := NewStore(ctx, nil)
		p := testProduct("A", "100")

		s.AddItem(ctx, p, math.MaxInt)
		s.AddItem(ctx, p, 1)
		s.AddItem(ctx, p, math.MaxInt)

		assert.Equal(t, MaxQuantity, s.Quantity("A"))
		assert.Equal(t, MaxQuantity, s.TotalItems())
		assert.True(t, s.TotalPrice().Equal(decimal.NewFromInt(100*MaxQuantity)))

		s.UpdateQuantity(ctx, "A", math.MaxInt)
		assert.Equal(t, MaxQuantity, s.Quantity("A"))
	})

	t.Run("저장된 큰 수량도 합칠 때 넘치지 않음", func(t *testing.T) {
		t.Parallel()

		items := sanitize([]Item{
			{Product: testProduct("A", "1"), Quantity: math.MaxInt},
			{Product: testProduct("A", "1"), Quantity: math.MaxInt},
			{Product: testProduct("B", "1"), Quantity: 3},
		})

		require.Len(t, items, 2)
		assert.Equal(t, MaxQuantity, items[0].Quantity)
		assert.Equal(t, 3, items[1].Quantity)
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("변경마다 저장하고 다시 불러옴", func(t *testing.T) {
		t.Parallel()

		kv := storage.NewMemoryStore()

		s := NewStore(ctx, NewKeyValuePersister(kv, "abc"))
		s.AddItem(ctx, testProduct("A", "10"), 2)
		s.AddItem(ctx, testProduct("B", "5"), 1)
		s.UpdateQuantity(ctx, "B", 4)

		reloaded := NewStore(ctx, NewKeyValuePersister(kv, "abc"))
		assert.Equal(t, s.Items(), reloaded.Items())

		other := NewStore(ctx, NewKeyValuePersister(kv, "xyz"))
		assert.Empty(t, other.Items(), "다른 장바구니와 분리")
	})

	t.Run("손상된 데이터는 빈 장바구니", func(t *testing.T) {
		t.Parallel()

		kv := storage.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, KeyPrefix+"broken", []byte(`{"not":"a list"`), 0))

		s := NewStore(ctx, NewKeyValuePersister(kv, "broken"))
		assert.Empty(t, s.Items())

		s.AddItem(ctx, testProduct("A", "1"), 1)
		reloaded := NewStore(ctx, NewKeyValuePersister(kv, "broken"))
		assert.Equal(t, 1, reloaded.Quantity("A"), "다음 저장이 손상된 데이터를 덮어씀")
	})

	t.Run("불러온 데이터 정리", func(t *testing.T) {
		t.Parallel()

		p := &MockPersister{}
		p.On("Load", mock.Anything).Return([]Item{
			{Product: testProduct("A", "1"), Quantity: 2},
			{Product: testProduct("B", "1"), Quantity: 0},
			{Product: testProduct("A", "1"), Quantity: 3},
			{Product: testProduct("", "1"), Quantity: 1},
		}, nil)

		s := NewStore(ctx, p)
		require.Len(t, s.Items(), 1)
		assert.Equal(t, 5, s.Quantity("A"))
		p.AssertExpectations(t)
	})

	t.Run("불러오기 실패는 빈 장바구니", func(t *testing.T) {
		t.Parallel()

		p := &MockPersister{}
		p.On("Load", mock.Anything).Return(nil, errors.New("disk error"))

		s := NewStore(ctx, p)
		assert.Empty(t, s.Items())
	})

	t.Run("저장 실패는 전파하지 않음", func(t *testing.T) {
		t.Parallel()

		p := &MockPersister{}
		p.On("Load", mock.Anything).Return(nil, nil)
		p.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		s := NewStore(ctx, p)
		s.AddItem(ctx, testProduct("A", "1"), 1)

		assert.Equal(t, 1, s.Quantity("A"), "메모리 상태는 유지")
		p.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("저장되는 목록은 스냅샷", func(t *testing.T) {
		t.Parallel()

		p := &MockPersister{}
		p.On("Load", mock.Anything).Return(nil, nil)
		p.On("Save", mock.Anything, mock.MatchedBy(func(items []Item) bool {
			return len(items) == 1 && items[0].Quantity == 3
		})).Return(nil).Once()
		p.On("Save", mock.Anything, mock.MatchedBy(func(items []Item) bool {
			return len(items) == 0
		})).Return(nil).Once()

		s := NewStore(ctx, p)
		s.AddItem(ctx, testProduct("A", "1"), 3)
		s.Clear(ctx)

		p.AssertExpectations(t)
	})
}

func TestStore_Concurrency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newMemoryStore(t)
	p := testProduct("A", "1")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(ctx, p, 1)
			_ = s.TotalPrice()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Quantity("A"))
}
