package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubFetcher 호출 횟수를 세고, release 채널이 있으면 닫힐 때까지 응답을 늦춥니다.
type stubFetcher struct {
	calls   atomic.Int32
	release chan struct{}
	fn      func(n int32) (catalog.Response, error)
}

func (f *stubFetcher) FetchCatalog(ctx context.Context) (catalog.Response, error) {
	n := f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return catalog.Response{}, ctx.Err()
		}
	}
	return f.fn(n)
}

func responseWith(refs ...string) catalog.Response {
	products := make([]catalog.Product, 0, len(refs))
	for _, ref := range refs {
		products = append(products, catalog.Product{Referencia: ref, Categoria: "Papel", Precio: decimal.NewFromInt(10), Moneda: "ARS"})
	}
	return catalog.NewResponse(products, "Retail", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestNewService_NilFetcher(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "CatalogFetcher는 필수입니다", func() {
		NewService(nil, "@every 5m")
	})
}

func TestService_SnapshotCachesFirstFetch(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{fn: func(n int32) (catalog.Response, error) {
		if n == 1 {
			return responseWith("PH-300", "SF-50"), nil
		}
		return responseWith("PH-300"), nil
	}}
	s := NewService(f, "@every 5m")

	assert.False(t, s.Status().Ready)

	got, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Products, 2)

	got, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Products, 2)
	assert.Equal(t, int32(1), f.calls.Load(), "두 번째 조회는 스냅샷 사용")

	live, err := s.Live(context.Background())
	require.NoError(t, err)
	assert.Len(t, live.Products, 1)

	got, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Products, 1, "Live 결과로 스냅샷 갱신")

	st := s.Status()
	assert.True(t, st.Ready)
	assert.Equal(t, 1, st.Products)
	assert.Empty(t, st.LastError)
}

func TestService_RefreshFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	failure := apperrors.New(apperrors.Unavailable, "Timeout al conectar con el ERP")
	f := &stubFetcher{fn: func(n int32) (catalog.Response, error) {
		if n == 1 {
			return responseWith("PH-300"), nil
		}
		return catalog.Response{}, failure
	}}
	s := NewService(f, "@every 5m")

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	_, err = s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure))

	got, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)

	st := s.Status()
	assert.True(t, st.Ready)
	assert.Equal(t, "Timeout al conectar con el ERP", st.LastError)
}

func TestService_SnapshotWithoutDataPropagatesError(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{fn: func(int32) (catalog.Response, error) {
		return catalog.Response{}, apperrors.New(apperrors.Unavailable, "Error del servidor ERP: 502")
	}}
	s := NewService(f, "@every 5m")

	_, err := s.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.False(t, s.Status().Ready)
}

func TestService_RefreshCoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{
		release: make(chan struct{}),
		fn: func(int32) (catalog.Response, error) {
			return responseWith("PH-300"), nil
		},
	}
	s := NewService(f, "@every 5m")

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := s.Refresh(context.Background())
			if err == nil {
				results[i] = len(resp.Products)
			}
		}()
	}

	// 모든 호출자가 진행 중인 조회에 합류할 시간을 줍니다.
	assert.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for i, n := range results {
		assert.Equal(t, 1, n, "caller %d", i)
	}
}

func TestService_RefreshCallerCancelDoesNotAbortFetch(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{
		release: make(chan struct{}),
		fn: func(int32) (catalog.Response, error) {
			return responseWith("PH-300"), nil
		},
	}
	s := NewService(f, "@every 5m")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Refresh(ctx)
		done <- err
	}()

	assert.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(f.release)
	assert.Eventually(t, func() bool { return s.Status().Ready }, time.Second, 5*time.Millisecond, "진행 중인 조회는 끝까지 수행")
}

func TestService_Lifecycle(t *testing.T) {
	f := &stubFetcher{fn: func(int32) (catalog.Response, error) {
		return responseWith("PH-300"), nil
	}}
	s := NewService(f, "@every 5m")

	t.Run("시작하면 첫 스냅샷을 불러옴", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup

		wg.Add(1)
		require.NoError(t, s.Start(ctx, &wg))
		assert.True(t, s.running)
		assert.NotNil(t, s.cron)

		assert.Eventually(t, func() bool { return s.Status().Ready }, time.Second, 5*time.Millisecond)

		cancel()
		checkWaitGroupDone(t, &wg)
		assert.False(t, s.running)
		assert.Nil(t, s.cron)
	})

	t.Run("중복 시작", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup

		wg.Add(1)
		require.NoError(t, s.Start(ctx, &wg))

		wg.Add(1)
		require.NoError(t, s.Start(ctx, &wg))
		assert.True(t, s.running)

		cancel()
		checkWaitGroupDone(t, &wg)
	})

	t.Run("중복 중지", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var wg sync.WaitGroup

		wg.Add(1)
		require.NoError(t, s.Start(ctx, &wg))

		s.Stop()
		assert.NotPanics(t, s.Stop)
		assert.False(t, s.running)

		cancel()
		checkWaitGroupDone(t, &wg)
	})
}

func TestService_Start_InvalidSpec(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{fn: func(int32) (catalog.Response, error) { return responseWith(), nil }}
	s := NewService(f, "* * *")

	var wg sync.WaitGroup
	wg.Add(1)
	err := s.Start(context.Background(), &wg)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.False(t, s.running)
	checkWaitGroupDone(t, &wg)
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestService_ScheduledRefresh(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{fn: func(n int32) (catalog.Response, error) {
		if n == 2 {
			return catalog.Response{}, apperrors.New(apperrors.Unavailable, "Error del servidor ERP: 503")
		}
		return responseWith("PH-300"), nil
	}}
	s := NewService(f, "@every 5m")

	s.scheduledRefresh()
	assert.True(t, s.Status().Ready)

	assert.NotPanics(t, s.scheduledRefresh, "실패는 로그만 남김")
	assert.Equal(t, "Error del servidor ERP: 503", s.Status().LastError)
	assert.Equal(t, int32(2), f.calls.Load())
}

func checkWaitGroupDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitGroup.Done()이 호출되지 않았습니다")
	}
}
