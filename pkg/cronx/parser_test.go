package cronx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		spec          string
		isValid       bool
		errorContains string
	}{
		{name: "5분마다", spec: "*/5 * * * *", isValid: true},
		{name: "평일 업무 시간", spec: "0-30/5 9-17 * * MON-FRI", isValid: true},
		{name: "앞뒤 공백", spec: " 0 * * * * ", isValid: true},
		{name: "@daily", spec: "@daily", isValid: true},
		{name: "@every", spec: "@every 1h30m", isValid: true},

		{name: "초 단위 6필드", spec: "0 */5 * * * *", errorContains: "expected exactly 5 fields"},
		{name: "필드 부족", spec: "* * *", errorContains: "expected exactly 5 fields"},
		{name: "가비지", spec: "invalid-cron", errorContains: "Cron 표현식 파싱 실패"},
		{name: "빈 문자열", spec: "", errorContains: "empty spec string"},
		{name: "범위 초과", spec: "70 * * * *", errorContains: "Cron 표현식 파싱 실패"},
		{name: "잘못된 간격", spec: "@every five", errorContains: "Cron 표현식 파싱 실패"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tc.spec)
			if tc.isValid {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tc.errorContains))
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	parser := StandardParser()
	base := time.Date(2026, 5, 1, 10, 7, 30, 0, time.UTC)

	tests := []struct {
		spec string
		want time.Time
	}{
		{"*/10 * * * *", time.Date(2026, 5, 1, 10, 10, 0, 0, time.UTC)},
		{"@hourly", time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC)},
		{"@every 5m", base.Add(5 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()

			sched, err := parser.Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sched.Next(base))
		})
	}
}
