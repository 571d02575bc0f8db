// Package validation 설정값과 요청 입력에 공통으로 쓰이는 형식 검증 함수를 제공합니다.
//
// 함수들은 validator 라이브러리와 무관한 순수 함수이며, 설정 검증기(internal/config)에서
// 커스텀 태그의 구현으로 연결해 사용합니다.
package validation

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname 호스트명이 localhost, IP 주소 또는 RFC 1123 도메인명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 {
		return fmt.Errorf("호스트명 전체 길이는 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	for label := range strings.SplitSeq(host, ".") {
		if len(label) == 0 {
			return fmt.Errorf("호스트명에 빈 레이블이 포함되어 있습니다 (host=%q)", host)
		}
		if len(label) > 63 {
			return fmt.Errorf("각 레이블은 63자를 초과할 수 없습니다 (label=%q)", label)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (invalid_char=%q, host=%q)", r, host)
			}
		}
	}

	return nil
}

// ValidateHostPort "host:port" 형식의 주소를 검증합니다 (예: localhost:6379).
func ValidateHostPort(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("주소는 host:port 형식이어야 합니다 (addr=%q)", addr)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("포트는 숫자여야 합니다 (port=%q)", portStr)
	}
	if err := ValidatePort(port); err != nil {
		return err
	}

	return ValidateHostname(host)
}
