package auth

import (
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

var (
	// ErrSignatureMissing X-Signature 헤더가 없습니다.
	ErrSignatureMissing = apperrors.New(apperrors.Unauthorized, "웹훅 서명 헤더(X-Signature)가 없습니다")

	// ErrSignatureMalformed X-Signature 헤더에 ts 또는 v1 값이 없거나 v1이 16진수가 아닙니다.
	ErrSignatureMalformed = apperrors.New(apperrors.Unauthorized, "웹훅 서명 헤더 형식이 올바르지 않습니다")

	// ErrSignatureMismatch 계산한 서명과 받은 서명이 다릅니다.
	ErrSignatureMismatch = apperrors.New(apperrors.Unauthorized, "웹훅 서명이 일치하지 않습니다")
)
