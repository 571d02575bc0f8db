package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/response"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LogEntry 로그 검증을 위한 구조체
type LogEntry struct {
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	StatusCode int    `json:"status_code"`
	RemoteIP   string `json:"remote_ip"`
	RequestID  string `json:"request_id"`
	Component  string `json:"component"`
}

// TestErrorHandler 전역 에러 핸들러의 응답과 로그를 검증합니다.
//
// 주의: pkg/log의 전역 상태를 변경하므로 t.Parallel()을 사용할 수 없습니다.
func TestErrorHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	setupTestLogger(t, buf)

	tests := []struct {
		name           string
		method         string
		err            error
		setupContext   func(c echo.Context)
		expectedStatus int
		expectedJSON   string
		expectedLog    *LogEntry
		expectNoLog    bool
	}{
		{
			name:           "404 기본 문구는 사용자 문구로 교체",
			method:         http.MethodGet,
			err:            echo.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"error":"Recurso no encontrado"}`,
			expectedLog: &LogEntry{
				Level:      "warning",
				Message:    "HTTP 4xx: 클라이언트 요청 오류",
				StatusCode: http.StatusNotFound,
				Component:  "api.error_handler",
			},
		},
		{
			name:           "404 커스텀 문구 유지",
			method:         http.MethodGet,
			err:            NewNotFoundError("Producto no encontrado: PH-300"),
			expectedStatus: http.StatusNotFound,
			expectedJSON:   `{"error":"Producto no encontrado: PH-300"}`,
		},
		{
			name:           "413 기본 문구 교체",
			method:         http.MethodPost,
			err:            echo.ErrStatusRequestEntityTooLarge,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedJSON:   `{"error":"El cuerpo de la solicitud es demasiado grande"}`,
		},
		{
			name:           "AppError InvalidInput은 400",
			method:         http.MethodPost,
			err:            apperrors.New(apperrors.InvalidInput, "Por favor completa todos los campos obligatorios"),
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Por favor completa todos los campos obligatorios"}`,
		},
		{
			name:           "AppError Unavailable은 503",
			method:         http.MethodPost,
			err:            apperrors.New(apperrors.Unavailable, "El servicio se está cerrando"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedJSON:   `{"error":"El servicio se está cerrando"}`,
			expectedLog: &LogEntry{
				Level:      "error",
				Message:    "HTTP 5xx: 서버 내부 오류 발생",
				StatusCode: http.StatusServiceUnavailable,
			},
		},
		{
			name:           "일반 에러는 500 + 일반 문구",
			method:         http.MethodGet,
			err:            errors.New("database connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedJSON:   `{"error":"Error interno del servidor"}`,
			expectedLog: &LogEntry{
				Level:      "error",
				StatusCode: http.StatusInternalServerError,
			},
		},
		{
			name:           "ErrorResponse 전체 전달",
			method:         http.MethodGet,
			err:            echo.NewHTTPError(http.StatusServiceUnavailable, response.ErrorResponse{Error: "ERP caído", Code: "ERP_CONNECTION_ERROR"}),
			expectedStatus: http.StatusServiceUnavailable,
			expectedJSON:   `{"error":"ERP caído","code":"ERP_CONNECTION_ERROR"}`,
		},
		{
			name:   "요청 ID와 IP 기록",
			method: http.MethodGet,
			err:    NewBadRequestError("Solicitud inválida"),
			setupContext: func(c echo.Context) {
				c.Request().Header.Set(echo.HeaderXRealIP, "203.0.113.7")
				c.Response().Header().Set(echo.HeaderXRequestID, "req-123")
			},
			expectedStatus: http.StatusBadRequest,
			expectedJSON:   `{"error":"Solicitud inválida"}`,
			expectedLog: &LogEntry{
				StatusCode: http.StatusBadRequest,
				RemoteIP:   "203.0.113.7",
				RequestID:  "req-123",
			},
		},
		{
			name:           "HEAD 요청은 본문 없음",
			method:         http.MethodHead,
			err:            NewNotFoundError("x"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "이미 응답이 전송된 경우 상태 유지",
			method: http.MethodGet,
			err:    NewInternalServerError("late"),
			setupContext: func(c echo.Context) {
				_ = c.String(http.StatusOK, "ok")
			},
			expectedStatus: http.StatusOK,
			expectedJSON:   "",
		},
		{
			name:           "3xx는 로그 없음",
			method:         http.MethodGet,
			err:            echo.NewHTTPError(http.StatusFound, "Redirecting"),
			expectedStatus: http.StatusFound,
			expectedJSON:   `{"error":"Redirecting"}`,
			expectNoLog:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			e := echo.New()
			req := httptest.NewRequest(tt.method, "/api/test", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if tt.setupContext != nil {
				tt.setupContext(c)
			}

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			switch {
			case tt.method == http.MethodHead:
				assert.Empty(t, rec.Body.String())
			case tt.expectedJSON != "":
				assert.JSONEq(t, tt.expectedJSON, rec.Body.String())
			case tt.setupContext != nil && tt.expectedStatus == http.StatusOK:
				assert.Equal(t, "ok", rec.Body.String(), "이미 보낸 본문에 덧붙이지 않음")
			}

			if tt.expectNoLog {
				assert.Empty(t, buf.String())
				return
			}

			if tt.expectedLog != nil {
				var entry LogEntry
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "로그 파싱 실패: %s", buf.String())

				if tt.expectedLog.Level != "" {
					assert.Equal(t, tt.expectedLog.Level, entry.Level)
				}
				if tt.expectedLog.Message != "" {
					assert.Equal(t, tt.expectedLog.Message, entry.Message)
				}
				if tt.expectedLog.Component != "" {
					assert.Equal(t, tt.expectedLog.Component, entry.Component)
				}
				if tt.expectedLog.RemoteIP != "" {
					assert.Equal(t, tt.expectedLog.RemoteIP, entry.RemoteIP)
				}
				if tt.expectedLog.RequestID != "" {
					assert.Equal(t, tt.expectedLog.RequestID, entry.RequestID)
				}
				assert.Equal(t, tt.expectedLog.StatusCode, entry.StatusCode)
				assert.Equal(t, "/api/test", entry.Path)
			}
		})
	}
}

// setupTestLogger 로거 출력을 버퍼로 바꾸고 테스트가 끝나면 되돌립니다.
func setupTestLogger(t *testing.T, buf *bytes.Buffer) {
	t.Helper()

	logger := applog.StandardLogger()
	prevOut, prevFormatter := logger.Out, logger.Formatter

	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})

	t.Cleanup(func() {
		applog.SetOutput(prevOut)
		applog.SetFormatter(prevFormatter)
	})
}
