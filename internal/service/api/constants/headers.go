package constants

// HTTP 헤더 키 상수입니다.
const (
	// XSignature Mercado Pago 웹훅 서명 헤더 ("ts=...,v1=...")
	XSignature = "X-Signature"

	// XRequestID Mercado Pago가 웹훅마다 붙이는 요청 ID 헤더. 서명 원문에 포함됩니다.
	XRequestID = "X-Request-Id"

	// RetryAfter 속도 제한 초과 시 재시도 대기 시간(초)을 알려주는 헤더
	RetryAfter = "Retry-After"

	SurrogateControl = "Surrogate-Control"
	Pragma           = "Pragma"
	Expires          = "Expires"
)

// 카탈로그 응답을 중간 캐시가 저장하지 않도록 하는 헤더 값입니다.
const (
	CacheControlNoStore     = "no-store, no-cache, must-revalidate, proxy-revalidate"
	CacheControlNoStoreOnly = "no-store"
	PragmaNoCache           = "no-cache"
	ExpiresImmediately      = "0"
	SurrogateControlNoStore = "no-store"
)
