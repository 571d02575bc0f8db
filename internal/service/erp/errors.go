package erp

import apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"

const (
	// ErrorCode 카탈로그 조회 실패 응답의 오류 코드
	ErrorCode = "ERP_CONNECTION_ERROR"

	// DefaultErrorMessage 원인을 특정할 수 없는 ERP 연결 실패 문구
	DefaultErrorMessage = "Error al conectar con el sistema ERP"
)

// UserMessage 조회 실패 에러에서 사용자에게 보여줄 문구를 꺼냅니다.
func UserMessage(err error) string {
	return apperrors.UserMessage(err, DefaultErrorMessage)
}
