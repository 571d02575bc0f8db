package fetcher

import (
	"context"
	"time"
)

// SetSleeper 테스트에서 재시도 대기를 생략하기 위해 사용합니다.
func (f *RetryFetcher) SetSleeper(fn func(ctx context.Context, d time.Duration) error) {
	f.sleeper = fn
}
