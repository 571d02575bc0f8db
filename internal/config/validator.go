package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/pkg/cronx"
	"github.com/darkkaiser/sangabriel-catalog/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 커스텀 태그(cors_origin, base_url, host_port, cron_spec)를 등록한 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 JSON 키를 보여줍니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	})
	mustRegister(v, "base_url", func(fl validator.FieldLevel) bool {
		return validation.ValidateBaseURL(fl.Field().String()) == nil
	})
	mustRegister(v, "host_port", func(fl validator.FieldLevel) bool {
		return validation.ValidateHostPort(fl.Field().String()) == nil
	})
	mustRegister(v, "cron_spec", func(fl validator.FieldLevel) bool {
		return cronx.Validate(fl.Field().String()) == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// checkStruct 구조체를 검증하고 첫 번째 검증 오류를 읽기 쉬운 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	fe := validationErrors[0]
	key := configKey(fe.Namespace())

	switch fe.StructField() {
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "웹 서비스 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TLSCertFile", "TLSKeyFile":
		switch fe.Tag() {
		case "required_if":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("TLS 서버 활성화 시 %s는 필수입니다", key))
		case "file":
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", key, fe.Value()))
		}
	case "RedisAddr":
		if fe.Tag() == "required_if" {
			return apperrors.New(apperrors.InvalidInput, "Redis 저장소 사용 시 Redis 주소(storage.redis_addr)는 필수입니다")
		}
	}

	switch fe.Tag() {
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value()))
	case "base_url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 URL 형식이 올바르지 않습니다: '%v' (예: https://example.com, 끝의 '/' 제외)", key, fe.Value()))
	case "host_port":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 주소 형식이 올바르지 않습니다: '%v' (예: localhost:6379)", key, fe.Value()))
	case "cron_spec":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 스케줄 표현식이 올바르지 않습니다: '%v' (예: @every 5m, 0 */10 * * * )", key, fe.Value()))
	case "oneof":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s는 다음 중 하나여야 합니다: %s (입력: '%v')", key, fe.Param(), fe.Value()))
	case "required", "required_if":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값이 설정되지 않았습니다", key))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, key, fe.Tag()))
}

// configKey "AppConfig.erp.retry.max_retries" 형태의 네임스페이스에서 설정 키 부분만 남깁니다.
func configKey(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
