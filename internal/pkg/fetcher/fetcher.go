// Package fetcher 외부 HTTP API 호출에 사용하는 데코레이터 기반 HTTP 클라이언트를 제공합니다.
//
// 기본 HTTP 클라이언트 위에 응답 크기 제한, 상태 코드 검증, 재시도, User-Agent, 로깅을
// 필요한 만큼 겹쳐 쌓아 사용합니다. 조립은 New(Config)가 담당합니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다. 에러가 반환되면 응답은 nil입니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get url로 GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return f.Do(req)
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 Body를 일부 읽어 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, body, 64*1024)
	_ = body.Close()
}
