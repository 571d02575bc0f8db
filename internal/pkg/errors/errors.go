// Package errors 애플리케이션 공통 에러 타입을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되고, Wrap으로 원인 에러를 감싸 문맥을 누적합니다.
// AppError의 메시지는 그대로 사용자에게 노출될 수 있으므로, 사용자 대상 문구(스페인어)는
// 에러 생성 시점에 메시지로 지정합니다.
//
//	err := errors.New(errors.NotFound, "Producto no encontrado")
//	if errors.Is(err, errors.NotFound) { ... }
//
// 외부 라이브러리 에러를 감쌀 때는 발생 계층에 맞는 타입을 고릅니다.
//   - context.DeadlineExceeded → Timeout
//   - net.Error → Unavailable 또는 System
//   - json 디코딩 오류 → ParsingFailed
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션 표준 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 스택 프레임을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v 출력 시 스택과 원인 체인을 함께 출력합니다.
//
// 스택은 체인의 끝(원인이 없거나 원인이 AppError가 아닌 경우)에서만 출력하여 중복을 피합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			var target *AppError
			if e.cause == nil || !errors.As(e.cause, &target) {
				if len(e.stack) > 0 {
					fmt.Fprint(s, "\nStack trace:")
					for _, frame := range e.stack {
						funcName := frame.Function
						if idx := strings.LastIndex(funcName, "/"); idx != -1 {
							funcName = funcName[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
					}
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if formatter, ok := e.cause.(fmt.Formatter); ok {
					formatter.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열로 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 원인 에러를 감싼 새 에러를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열로 원인 에러를 감쌉니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 errType의 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 체인에서 가장 안쪽 AppError의 타입을 반환합니다. AppError가 없으면 Unknown입니다.
func UnderlyingType(err error) ErrorType {
	lastType := Unknown
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			lastType = appErr.errType
		}
		err = errors.Unwrap(err)
	}
	return lastType
}

// UserMessage 체인에서 메시지가 있는 가장 바깥쪽 AppError의 메시지를 반환합니다.
// 사용자에게 가까운 계층(ERP 클라이언트 등)이 Wrap으로 지정한 문구가 우선합니다.
// AppError가 없으면 fallback을 반환합니다.
func UserMessage(err error, fallback string) string {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.message != "" {
			return appErr.message
		}
		err = errors.Unwrap(err)
	}
	return fallback
}
