package system

import "time"

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, degraded, unhealthy
	Status string `json:"status" example:"healthy"`
	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`
	// 외부 의존성별 헬스체크 결과 (키: 의존성 이름)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
	// 카탈로그 스냅샷 요약
	Catalog *CatalogStatus `json:"catalog,omitempty"`
}

// CatalogStatus 메모리에 보관 중인 카탈로그 스냅샷 요약
type CatalogStatus struct {
	// 스냅샷의 상품 수
	Products int `json:"products" example:"42"`
	// 마지막으로 갱신에 성공한 시각
	RefreshedAt time.Time `json:"refreshed_at" example:"2025-12-01T14:00:00Z"`
}
