package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/stretchr/testify/require"
)

// captureLogs 테스트 동안 전역 로거 출력을 JSON으로 버퍼에 기록합니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	originalOut := applog.StandardLogger().Out
	originalFormatter := applog.StandardLogger().Formatter
	originalLevel := applog.StandardLogger().Level

	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		applog.SetOutput(originalOut)
		applog.SetFormatter(originalFormatter)
		applog.SetLevel(originalLevel)
	})

	return buf
}

// parseLastLogEntry 버퍼에 기록된 마지막 JSON 로그를 파싱합니다.
func parseLastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	output := strings.TrimSpace(buf.String())
	require.NotEmpty(t, output, "로그가 기록되지 않았습니다")

	lines := strings.Split(output, "\n")
	lastLine := lines[len(lines)-1]

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lastLine), &entry), "로그 파싱 실패: %s", lastLine)

	return entry
}
