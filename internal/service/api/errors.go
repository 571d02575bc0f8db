package api

import (
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

var (
	// ErrServiceNotInitialized NewService를 거치지 않아 설정이나 의존성이 비어 있는 서비스를 시작하려 할 때 반환하는 에러입니다.
	ErrServiceNotInitialized = apperrors.New(apperrors.Internal, "API 서비스의 설정 또는 의존성이 초기화되지 않았습니다")
)
