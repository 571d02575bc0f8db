package fetcher

import "net/http"

// UserAgentFetcher User-Agent 헤더가 없는 요청에 고정 User-Agent를 설정합니다.
type UserAgentFetcher struct {
	delegate  Fetcher
	userAgent string
}

var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher 새로운 UserAgentFetcher를 생성합니다.
func NewUserAgentFetcher(delegate Fetcher, userAgent string) *UserAgentFetcher {
	return &UserAgentFetcher{delegate: delegate, userAgent: userAgent}
}

func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if f.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return f.delegate.Do(req)
	}

	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", f.userAgent)
	return f.delegate.Do(cloned)
}
