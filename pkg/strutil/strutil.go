// Package strutil 문자열 처리 유틸리티를 제공합니다.
package strutil

import (
	"net/url"
	"strings"
)

// Mask 토큰, 키 등 민감한 값을 로그에 남길 수 있도록 마스킹합니다.
// 예: "APP_USR-1234567890-abcd" -> "APP_***abcd"
func Mask(data string) string {
	if data == "" {
		return ""
	}
	if len(data) <= 3 {
		return "***"
	}
	if len(data) <= 12 {
		return data[:4] + "***"
	}
	return data[:4] + "***" + data[len(data)-4:]
}

// SplitAndTrim 구분자로 나눈 뒤 각 항목의 공백을 제거하고 빈 항목은 버립니다.
// 결과가 없으면 nil을 반환합니다.
// 예: "a, , b,c" -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for token := range strings.SplitSeq(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백을 하나로 줄입니다.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent 브라우저의 encodeURIComponent와 같은 규칙으로 문자열을 인코딩합니다.
// 공백은 "%20"이 되고 "-_.!~*'()"는 그대로 유지됩니다.
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}
