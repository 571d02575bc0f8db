package fetcher

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/darkkaiser/sangabriel-catalog/pkg/strutil"
)

// LoggingFetcher 요청 결과와 소요 시간을 기록합니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher 새로운 LoggingFetcher를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}

	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Error("HTTP 요청 실패")
		return nil, err
	}

	fields["status_code"] = resp.StatusCode
	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 완료")
	return resp, nil
}

// sensitiveQueryKeys 로그에 원문을 남기지 않을 쿼리 파라미터
var sensitiveQueryKeys = []string{"access_token", "token", "key", "secret", "password"}

// redactURL 사용자 정보와 민감한 쿼리 값을 마스킹한 URL 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	redacted := *u
	if redacted.User != nil {
		redacted.User = url.User(redacted.User.Username())
	}

	if redacted.RawQuery != "" {
		q := redacted.Query()
		changed := false
		for key, values := range q {
			for _, s := range sensitiveQueryKeys {
				if strings.EqualFold(key, s) {
					for i, v := range values {
						values[i] = strutil.Mask(v)
					}
					changed = true
				}
			}
		}
		if changed {
			redacted.RawQuery = q.Encode()
		}
	}

	return redacted.String()
}
