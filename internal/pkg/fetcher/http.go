package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultMaxIdleConns        = 100
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// HTTPFetcher net/http 클라이언트로 요청을 수행하는 가장 안쪽의 Fetcher입니다.
//
// 전송 계층 오류를 분류하여 반환합니다.
//   - 요청 타임아웃(컨텍스트 만료, net.Error Timeout) → apperrors.Timeout
//   - 그 외 연결 실패 → apperrors.Unavailable
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPOption HTTPFetcher 설정 옵션입니다.
type HTTPOption func(*http.Client)

// WithTimeout 요청 전체 타임아웃을 지정합니다. 0 이하이면 기본값(30초)을 사용합니다.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *http.Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithTransport 전송 계층을 교체합니다. 테스트에서 주로 사용합니다.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(c *http.Client) {
		if rt != nil {
			c.Transport = rt
		}
	}
}

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = defaultMaxIdleConns
	transport.IdleConnTimeout = defaultIdleConnTimeout
	transport.TLSHandshakeTimeout = defaultTLSHandshakeTimeout

	client := &http.Client{
		Timeout:   defaultTimeout,
		Transport: transport,
	}
	for _, opt := range opts {
		opt(client)
	}

	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, classifyTransportError(err)
	}
	return resp, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.Wrap(err, apperrors.Timeout, "요청 시간이 초과되었습니다")
	}
	return apperrors.Wrap(err, apperrors.Unavailable, "원격 서버에 연결할 수 없습니다")
}
