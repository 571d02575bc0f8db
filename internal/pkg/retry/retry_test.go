package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSleeper 실제로 대기하지 않고 요청된 지연 시간만 기록합니다.
type recordSleeper struct {
	delays []time.Duration
}

func (s *recordSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func TestPolicy_Delay(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	assert.Equal(t, time.Duration(0), p.Delay(0))
	assert.Equal(t, 1000*time.Millisecond, p.Delay(1))
	assert.Equal(t, 1500*time.Millisecond, p.Delay(2))
	assert.Equal(t, 2250*time.Millisecond, p.Delay(3))

	capped := Policy{InitialDelay: time.Second, Multiplier: 10, MaxDelay: 3 * time.Second}
	assert.Equal(t, 3*time.Second, capped.Delay(2))

	flat := Policy{InitialDelay: time.Second, Multiplier: 0}
	assert.Equal(t, time.Second, flat.Delay(3))
}

func TestDo(t *testing.T) {
	t.Parallel()

	errTransient := errors.New("transient")

	t.Run("두 번 실패 후 세 번째 성공", func(t *testing.T) {
		t.Parallel()

		s := &recordSleeper{}
		calls := 0
		got, err := Do(context.Background(), DefaultPolicy(), func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errTransient
			}
			return "ok", nil
		}, WithSleeper(s.sleep))

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{1000 * time.Millisecond, 1500 * time.Millisecond}, s.delays)
	})

	t.Run("항상 실패하면 3회 시도 후 마지막 에러 반환", func(t *testing.T) {
		t.Parallel()

		s := &recordSleeper{}
		calls := 0
		_, err := Do(context.Background(), DefaultPolicy(), func(context.Context) (int, error) {
			calls++
			return 0, errors.New("attempt " + string(rune('0'+calls)))
		}, WithSleeper(s.sleep))

		require.Error(t, err)
		assert.Equal(t, "attempt 3", err.Error())
		assert.Equal(t, 3, calls)
	})

	t.Run("Permanent 에러는 재시도하지 않음", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := Do(context.Background(), DefaultPolicy(), func(context.Context) (int, error) {
			calls++
			return 0, Permanent(errTransient)
		}, WithSleeper((&recordSleeper{}).sleep))

		assert.Same(t, errTransient, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("대기 중 컨텍스트 취소", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := Do(ctx, DefaultPolicy(), func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errTransient
		})

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 1, calls)
	})

	t.Run("Notify 콜백", func(t *testing.T) {
		t.Parallel()

		var retries []int
		_, _ = Do(context.Background(), Policy{MaxRetries: 2}, func(context.Context) (int, error) {
			return 0, errTransient
		}, WithNotify(func(retry int, _ time.Duration, err error) {
			assert.ErrorIs(t, err, errTransient)
			retries = append(retries, retry)
		}))

		assert.Equal(t, []int{1, 2}, retries)
	})

	t.Run("재시도 없는 정책", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := Do(context.Background(), Policy{}, func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 1, calls)
	})
}
