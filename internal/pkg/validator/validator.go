// Package validator 요청 본문 검증에 쓰는 공용 validator 인스턴스와 스페인어 오류 문구 변환을 제공합니다.
//
// 필드 이름은 label 태그, json 태그, Go 필드명 순으로 정해집니다.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get 초기화된 validator 인스턴스를 반환합니다. 모든 호출이 같은 인스턴스를 공유합니다.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldLabel)
	})

	return validate
}

func fieldLabel(fld reflect.StructField) string {
	if label := fld.Tag.Get("label"); label != "" {
		return label
	}
	if name, _, _ := strings.Cut(fld.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return fld.Name
}

// Struct 구조체의 validate 태그를 검사합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 에러의 첫 번째 항목을 사용자용 스페인어 문구로 바꿉니다.
// 검증 에러가 아니면 원본 메시지를 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "required_without", "required_with":
		return fmt.Sprintf("El campo %s es obligatorio", field)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("El campo %s debe contener al menos %s elementos", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser mayor o igual a %s", field, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("El campo %s admite como máximo %s caracteres", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("El campo %s admite como máximo %s elementos", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser menor o igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("El campo %s debe ser mayor que %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("El campo %s debe ser un email válido", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("El campo %s debe ser un identificador válido", field)
	case "oneof":
		return fmt.Sprintf("El campo %s debe ser uno de: %s", field, fe.Param())
	}

	return fmt.Sprintf("El campo %s no es válido (%s)", field, fe.Tag())
}
