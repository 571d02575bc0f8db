package constants

import "time"

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// HealthStatusDegraded 헬스체크 상태: 일부 기능 제한 (결제 미설정, 스냅샷 미준비 등)
	HealthStatusDegraded = "degraded"

	// HealthProbeKey 저장소 응답을 확인할 때 조회하는 키
	HealthProbeKey = "health:probe"

	// HealthProbeTimeout 저장소 응답 확인의 최대 대기 시간
	HealthProbeTimeout = 2 * time.Second

	// ------------------------------------------------------------------------------------------------
	// 외부 의존성 ID
	// ------------------------------------------------------------------------------------------------

	DependencyStorage         = "storage"
	DependencyCatalogSnapshot = "catalog_snapshot"
	DependencyMercadoPago     = "mercadopago"

	MsgDepStatusHealthy           = "정상 작동 중"
	MsgDepStatusSnapshotNotReady  = "카탈로그 스냅샷을 아직 불러오지 못했습니다"
	MsgDepStatusSnapshotStale     = "마지막 갱신 실패, 이전 스냅샷 사용 중: %s"
	MsgDepStatusPaymentNotEnabled = "Mercado Pago 액세스 토큰이 설정되지 않았습니다"
)
