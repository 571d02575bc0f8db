// Package retry 순차적 지수 백오프 재시도 정책을 제공합니다.
//
// 재시도는 항상 순차적으로 수행되며, 대기 중 컨텍스트가 취소되면 즉시 중단합니다.
// 모든 시도가 실패하면 마지막 시도의 에러를 그대로 반환합니다.
package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

// Policy 재시도 정책입니다.
type Policy struct {
	// MaxRetries 첫 시도를 제외한 최대 재시도 횟수 (0: 재시도 안 함)
	MaxRetries int `json:"max_retries" validate:"min=0,max=10"`

	// InitialDelay 첫 번째 재시도 전 대기 시간
	InitialDelay time.Duration `json:"initial_delay" validate:"min=0"`

	// Multiplier 재시도마다 대기 시간에 곱하는 배수 (1 미만이면 1로 간주)
	Multiplier float64 `json:"multiplier" validate:"min=0"`

	// MaxDelay 대기 시간 상한 (0: 제한 없음)
	MaxDelay time.Duration `json:"max_delay" validate:"min=0"`
}

// DefaultPolicy 최대 2회 재시도, 1000ms에서 시작해 1.5배씩 늘어나는 정책을 반환합니다.
// 대기 시간은 1000ms, 1500ms 순입니다.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   2,
		InitialDelay: 1000 * time.Millisecond,
		Multiplier:   1.5,
	}
}

// Delay retry번째 재시도(1부터 시작) 전에 대기할 시간을 반환합니다.
func (p Policy) Delay(retry int) time.Duration {
	if retry < 1 || p.InitialDelay <= 0 {
		return 0
	}

	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	d := time.Duration(float64(p.InitialDelay) * math.Pow(multiplier, float64(retry-1)))
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Attempts 첫 시도를 포함한 총 시도 횟수를 반환합니다.
func (p Policy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

// permanentError 재시도하지 않을 에러를 표시합니다.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent err을 재시도 불가 에러로 표시합니다. Do는 감싼 원본 에러를 반환합니다.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Notify 재시도 대기 직전에 호출됩니다.
type Notify func(retry int, delay time.Duration, err error)

type options struct {
	notify  Notify
	sleeper func(ctx context.Context, d time.Duration) error
}

// Option Do의 동작을 변경합니다.
type Option func(*options)

// WithNotify 재시도마다 호출될 콜백을 지정합니다. 주로 경고 로그를 남기는 데 사용합니다.
func WithNotify(fn Notify) Option {
	return func(o *options) {
		o.notify = fn
	}
}

// WithSleeper 대기 함수를 교체합니다. 테스트에서 실제 대기 없이 지연 시간을 검증할 때 사용합니다.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *options) {
		o.sleeper = fn
	}
}

// Do fn을 정책에 따라 실행합니다.
//
// fn이 성공하면 즉시 결과를 반환하고, Permanent로 표시된 에러나 컨텍스트 취소는 재시도하지 않습니다.
// 재시도 횟수를 모두 소진하면 마지막 에러를 반환합니다.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := options{sleeper: sleep}
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	var lastErr error

	attempts := p.Attempts()
	for i := 0; i < attempts; i++ {
		if i > 0 {
			delay := p.Delay(i)
			if o.notify != nil {
				o.notify(i, delay, lastErr)
			}
			if err := o.sleeper(ctx, delay); err != nil {
				return zero, lastErr
			}
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		if ctx.Err() != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
