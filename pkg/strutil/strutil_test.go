package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"빈 문자열", "", ""},
		{"3자 이하", "abc", "***"},
		{"12자 이하", "abcdefgh", "abcd***"},
		{"긴 토큰", "APP_USR-1234567890-abcd", "APP_***abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Mask(tt.in))
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, SplitAndTrim("a, , b,c", ","))
	assert.Nil(t, SplitAndTrim(" , ", ","))
	assert.Nil(t, SplitAndTrim("", ","))
}

func TestNormalizeSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Juan Pérez", NormalizeSpaces("  Juan   Pérez "))
	assert.Equal(t, "", NormalizeSpaces("   "))
}

func TestEncodeURIComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hola mundo", "Hola%20mundo"},
		{"a+b=c&d", "a%2Bb%3Dc%26d"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"Cotización\n📦", "Cotizaci%C3%B3n%0A%F0%9F%93%A6"},
		{"$1.500", "%241.500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}
