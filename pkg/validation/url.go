package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidateCORSOrigin 'Scheme://Host[:Port]' 형식의 CORS Origin인지 검증합니다. '*'는 허용됩니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}

	u, err := parseHTTPURL(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin %w", err)
	}
	if u.Path != "" {
		return fmt.Errorf("CORS Origin 포맷 오류: 경로(Path)를 포함할 수 없습니다 (input=%q)", origin)
	}
	return nil
}

// ValidateBaseURL 외부 서비스 기준 URL(ERP, 결제 API, 애플리케이션 공개 URL) 형식을 검증합니다.
//
// 경로는 허용하지만 쿼리, 프래그먼트, 후행 슬래시는 허용하지 않습니다.
// 후행 슬래시를 막는 이유는 기준 URL 뒤에 "/api/..." 형태의 경로를 이어 붙이기 때문입니다.
func ValidateBaseURL(raw string) error {
	_, err := parseHTTPURL(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("기준 URL %w", err)
	}
	return nil
}

func parseHTTPURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("값이 비어 있습니다")
	}
	if strings.HasSuffix(raw, "/") {
		return nil, fmt.Errorf("포맷 오류: '/'로 끝날 수 없습니다 (input=%q)", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("파싱 실패: 유효한 URL 형식이 아닙니다 (input=%q): %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("스키마 오류: 'http' 또는 'https'만 허용됩니다 (input=%q)", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("포맷 오류: 쿼리 또는 프래그먼트를 포함할 수 없습니다 (input=%q)", raw)
	}
	if u.User != nil {
		return nil, fmt.Errorf("포맷 오류: 사용자 자격 증명(UserInfo)을 포함할 수 없습니다 (input=%q)", raw)
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("포트 오류: 포트 번호가 유효하지 않습니다 (input=%q)", raw)
		}
		if err := ValidatePort(port); err != nil {
			return nil, fmt.Errorf("포트 오류: %w", err)
		}
	}

	if u.Hostname() == "" {
		return nil, fmt.Errorf("포맷 오류: 호스트 정보가 누락되었습니다 (input=%q)", raw)
	}
	if err := ValidateHostname(u.Hostname()); err != nil {
		return nil, fmt.Errorf("호스트 오류: %w", err)
	}

	return u, nil
}
