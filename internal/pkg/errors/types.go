package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 분류입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크 등 인프라 오류
	System

	// Unauthorized 인증 실패
	Unauthorized

	// Forbidden 권한 부족
	Forbidden

	// InvalidInput 입력값 검증 실패
	InvalidInput

	// Conflict 리소스 상태 충돌
	Conflict

	// NotFound 리소스 없음
	NotFound

	// ExecutionFailed 외부 API 호출 등 작업 수행 실패
	ExecutionFailed

	// ParsingFailed JSON 디코딩 등 데이터 해석 실패
	ParsingFailed

	// Timeout 시간 초과
	Timeout

	// Unavailable 외부 시스템 일시적 사용 불가
	Unavailable
)
