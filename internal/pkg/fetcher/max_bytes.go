package fetcher

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

// defaultMaxBytes 응답 본문 기본 상한 (10MB)
const defaultMaxBytes int64 = 10 * 1024 * 1024

// MaxBytesFetcher 응답 본문 크기를 제한합니다.
//
// Content-Length가 상한을 넘으면 즉시 실패하고, 길이를 알 수 없는 응답은
// 읽는 도중 상한을 넘는 순간 에러를 반환합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

var _ Fetcher = (*MaxBytesFetcher)(nil)

// NewMaxBytesFetcher 새로운 MaxBytesFetcher를 생성합니다. limit이 0 이하이면 기본값(10MB)을 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) *MaxBytesFetcher {
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrBodyTooLarge(f.limit)
	}

	resp.Body = &limitedReadCloser{rc: resp.Body, remaining: f.limit, limit: f.limit}
	return resp, nil
}

type limitedReadCloser struct {
	rc        io.ReadCloser
	remaining int64
	limit     int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// 상한에 도달했을 때 본문이 정확히 끝났는지 1바이트를 더 읽어 확인합니다.
		var probe [1]byte
		n, err := l.rc.Read(probe[:])
		if n > 0 {
			return 0, newErrBodyTooLarge(l.limit)
		}
		return 0, err
	}

	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.rc.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedReadCloser) Close() error {
	return l.rc.Close()
}

func newErrBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문이 허용된 크기(%d bytes)를 초과했습니다", limit))
}
