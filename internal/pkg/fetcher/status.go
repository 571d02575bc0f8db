package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

// maxBodySnippetBytes 상태 코드 에러에 담을 응답 본문 최대 길이
const maxBodySnippetBytes = 4096

// HTTPStatusError 허용되지 않은 상태 코드 응답입니다.
//
// Body에는 진단용으로 응답 본문 앞부분이 담깁니다. 결제 대행사의 오류 응답을
// 그대로 클라이언트에 전달해야 하는 경우에 사용합니다.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
	Header     http.Header
	Body       string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %s", e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.Body != "" {
		msg += ", Body: " + e.Body
	}
	return msg
}

// Temporary 재시도로 회복될 수 있는 상태 코드인지 반환합니다.
func (e *HTTPStatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return e.StatusCode >= 500
}

// CheckResponseStatus 응답 상태 코드가 허용 목록(비어 있으면 2xx)에 있는지 검사합니다.
//
// 허용되지 않으면 응답 본문 앞부분을 읽어 HTTPStatusError를 감싼 에러를 반환합니다.
// 본문은 읽은 상태로 남으므로 호출자가 Body를 닫아야 합니다.
func CheckResponseStatus(resp *http.Response, allowed ...int) error {
	if len(allowed) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
	} else if slices.Contains(allowed, resp.StatusCode) {
		return nil
	}

	statusErr := &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		statusErr.URL = redactURL(resp.Request.URL)
	}
	if resp.Body != nil {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		statusErr.Body = strings.TrimSpace(string(snippet))
	}

	errType := apperrors.ExecutionFailed
	if statusErr.Temporary() {
		errType = apperrors.Unavailable
	}
	return apperrors.Wrap(statusErr, errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status))
}

// StatusCodeFetcher 허용되지 않은 상태 코드 응답을 에러로 변환합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
	allowed  []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 새로운 StatusCodeFetcher를 생성합니다. allowed가 비어 있으면 2xx만 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowed ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate, allowed: allowed}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return nil, err
	}

	if err := CheckResponseStatus(resp, f.allowed...); err != nil {
		drainAndCloseBody(resp.Body)
		return nil, err
	}
	return resp, nil
}
