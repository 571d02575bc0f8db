// Package cronx 애플리케이션 전체에서 같은 규칙으로 cron 표현식을 해석하기 위한 파서와 검증 함수를 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 표준 5필드 형식과 Descriptor를 지원하는 파서를 반환합니다.
//
// 지원 스펙:
//   - 필드 순서: [분] [시] [일] [월] [요일]
//   - 특수 표현식: @daily, @hourly, @every <duration> 등
//
// 예시:
//   - "*/10 * * * *" : 10분마다 실행
//   - "@every 5m"    : 5분 간격으로 실행
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate spec이 StandardParser로 해석되는지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패 (%q): %w", spec, err)
	}
	return nil
}
