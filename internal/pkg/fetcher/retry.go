package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/retry"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

// RetryFetcher 일시적인 실패를 정책에 따라 재시도합니다.
//
// 재시도 대상:
//   - 전송 계층 오류 (apperrors.Unavailable, apperrors.Timeout)
//   - 5xx (501/505/511 제외), 429, 408 상태 코드
//
// 멱등이 아닌 메서드(POST, PATCH)와 GetBody 없이 본문을 가진 요청은 재시도하지 않습니다.
// 결제 선호(preference) 생성처럼 중복 실행이 곤란한 요청이 여기에 해당합니다.
type RetryFetcher struct {
	delegate Fetcher
	policy   retry.Policy
	sleeper  func(ctx context.Context, d time.Duration) error
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher를 생성합니다.
func NewRetryFetcher(delegate Fetcher, policy retry.Policy) *RetryFetcher {
	return &RetryFetcher{delegate: delegate, policy: policy}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	policy := f.policy
	if !isIdempotentMethod(req.Method) || (req.Body != nil && req.Body != http.NoBody && req.GetBody == nil) {
		policy.MaxRetries = 0
	}

	opts := []retry.Option{
		retry.WithNotify(func(n int, delay time.Duration, err error) {
			applog.WithComponentAndFields(component, applog.Fields{
				"method":      req.Method,
				"url":         redactURL(req.URL),
				"retry":       n,
				"max_retries": policy.MaxRetries,
				"delay":       delay.String(),
				"error":       err.Error(),
			}).Warn("일시적 오류로 요청을 재시도합니다")
		}),
	}
	if f.sleeper != nil {
		opts = append(opts, retry.WithSleeper(f.sleeper))
	}

	attempt := 0
	return retry.Do(req.Context(), policy, func(ctx context.Context) (*http.Response, error) {
		attempt++

		r := req
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, retry.Permanent(apperrors.Wrap(err, apperrors.Internal, "재시도를 위한 요청 본문 재생성에 실패했습니다"))
			}
			r = req.Clone(ctx)
			r.Body = body
		}

		resp, err := f.delegate.Do(r)
		if err != nil {
			if !isRetriable(err) {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return resp, nil
	}, opts...)
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func isRetriable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	return apperrors.Is(err, apperrors.Unavailable) || apperrors.Is(err, apperrors.Timeout)
}
