// Package maputil 맵 형태의 데이터(JSON 페이로드 등)를 구조체로 변환하는 유틸리티를 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode 입력 데이터를 타입 T의 구조체로 변환합니다.
//
// 기본 동작:
//   - json 태그 기준으로 필드를 매핑합니다.
//   - 유연한 타입 변환(WeaklyTyped)을 허용합니다. 예: 12345 (숫자) -> "12345" (string)
//   - 구조체에 없는 필드는 무시합니다.
//
//	evt, err := maputil.Decode[WebhookEvent](payload)
func Decode[T any](input any, opts ...Option) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output, opts...); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo 입력 데이터를 output이 가리키는 구조체에 병합합니다.
func DecodeTo[T any](input any, output *T, opts ...Option) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	cfg := &decodingConfig{
		tagName:          "json",
		weaklyTypedInput: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          cfg.tagName,
		WeaklyTypedInput: cfg.weaklyTypedInput,
		ErrorUnused:      cfg.errorUnused,
		Squash:           true,
		DecodeHook:       cfg.buildDecodeHook(),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}
	return nil
}

type decodingConfig struct {
	tagName          string
	weaklyTypedInput bool
	errorUnused      bool
	extraHooks       []mapstructure.DecodeHookFunc
}

// buildDecodeHook 사용자 훅을 먼저, 기본 훅을 나중에 실행하는 훅 체인을 만듭니다.
func (c *decodingConfig) buildDecodeHook() mapstructure.DecodeHookFunc {
	hooks := make([]mapstructure.DecodeHookFunc, 0, len(c.extraHooks)+2)
	hooks = append(hooks, c.extraHooks...)
	hooks = append(hooks,
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	return mapstructure.ComposeDecodeHookFunc(hooks...)
}

// Option 디코딩 설정을 변경하는 함수형 옵션입니다.
type Option func(*decodingConfig)

// WithTagName 필드 매핑에 사용할 태그 이름을 지정합니다. (기본값: "json")
func WithTagName(tagName string) Option {
	return func(c *decodingConfig) {
		c.tagName = tagName
	}
}

// WithWeaklyTypedInput 유연한 타입 변환 여부를 지정합니다. (기본값: true)
func WithWeaklyTypedInput(enable bool) Option {
	return func(c *decodingConfig) {
		c.weaklyTypedInput = enable
	}
}

// WithErrorUnused 구조체에 없는 필드가 있으면 에러를 반환하도록 합니다. (기본값: false)
func WithErrorUnused(enable bool) Option {
	return func(c *decodingConfig) {
		c.errorUnused = enable
	}
}

// WithDecodeHook 기본 훅보다 먼저 실행될 사용자 훅을 추가합니다.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(c *decodingConfig) {
		if hook != nil {
			c.extraHooks = append(c.extraHooks, hook)
		}
	}
}
