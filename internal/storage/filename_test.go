package storage

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"CamelCase", "PendingOrder", "pending-order"},
		{"경로 구분자", "a/b\\c", "a-b-c"},
		{"상위 경로", "../x", "---x"},
		{"제어 문자", "a\tb", "a-b"},
		{"특수 문자", `a:b*c?d"e`, "a-b-c-d-e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeName(tt.input)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "\\")
			assert.NotContains(t, got, "..")
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTruncateByBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"제한 이하", "abc", 5, "abc"},
		{"ASCII 절단", "abcdef", 3, "abc"},
		{"멀티바이트 경계 보존", "한글테스트", 7, "한글"},
		{"0 제한", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := truncateByBytes(tt.input, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestGenerateFilename(t *testing.T) {
	t.Parallel()

	t.Run("형식", func(t *testing.T) {
		t.Parallel()

		name := generateFilename("sangabriel-cart:abc")
		assert.True(t, strings.HasPrefix(name, "kv-sangabriel-cart-abc-"), name)
		assert.True(t, strings.HasSuffix(name, ".json"), name)
	})

	t.Run("결정적", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, generateFilename("a:b"), generateFilename("a:b"))
	})

	t.Run("정규화 충돌은 해시로 구분", func(t *testing.T) {
		t.Parallel()

		// 두 키 모두 "a-b"로 정규화됩니다.
		assert.NotEqual(t, generateFilename("a:b"), generateFilename("a/b"))
	})

	t.Run("긴 키는 잘림", func(t *testing.T) {
		t.Parallel()

		name := generateFilename(strings.Repeat("x", 500))
		assert.LessOrEqual(t, len(name), len("kv-")+maxNameBytes+len("-0000000000000000.json"))
	})
}
