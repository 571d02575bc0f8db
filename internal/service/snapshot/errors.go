package snapshot

import (
	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

func newErrInvalidRefreshSpec(err error, spec string) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "카탈로그 갱신 주기 표현식이 올바르지 않습니다 (refresh_spec=%q)", spec)
}
