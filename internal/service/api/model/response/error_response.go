package response

import "encoding/json"

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// Error 사용자에게 보여줄 오류 문구
	Error string `json:"error" example:"Error al conectar con el sistema ERP"`

	// Code 오류 분류 코드 (카탈로그 조회 실패 시 ERP_CONNECTION_ERROR)
	Code string `json:"code,omitempty" example:"ERP_CONNECTION_ERROR"`

	// Details 결제 대행사가 돌려준 오류 본문
	Details json.RawMessage `json:"details,omitempty" swaggertype:"object"`

	// Timestamp 오류 발생 시각 (RFC3339, UTC)
	Timestamp string `json:"timestamp,omitempty" example:"2026-05-01T10:00:00.000Z"`
}
