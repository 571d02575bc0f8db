package log

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// componentKey 모든 로그에 공통으로 기록되는 컴포넌트 필드명
const componentKey = "component"

// StandardLogger 전역 Logger를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithComponent component 필드가 설정된 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 Entry를 반환합니다.
// 전달된 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentKey] = component
	return logrus.WithFields(merged)
}

// WithFields 추가 필드가 설정된 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithContext ctx가 연결된 Entry를 반환합니다.
func WithContext(ctx context.Context) *Entry {
	return logrus.WithContext(ctx)
}

// SetOutput 전역 Logger의 출력 대상을 변경합니다. 주로 테스트에서 로그를 캡처할 때 사용합니다.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// SetFormatter 전역 Logger의 포맷터를 변경합니다.
func SetFormatter(f Formatter) {
	logrus.SetFormatter(f)
}

// SetLevel 전역 Logger의 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// GetLevel 전역 Logger의 레벨을 반환합니다.
func GetLevel() Level {
	return logrus.GetLevel()
}

// ParseLevel 문자열을 Level로 변환합니다.
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}
