// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 스토어프런트와 무관한 시스템 수준의 API를 처리합니다.
package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/version"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/system"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/snapshot"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/labstack/echo/v4"
)

// SnapshotStatusProvider 카탈로그 스냅샷의 현재 상태를 제공합니다.
type SnapshotStatusProvider interface {
	Status() snapshot.Status
}

// PaymentGateway 결제 게이트웨이의 설정 여부를 제공합니다.
type PaymentGateway interface {
	Configured() bool
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	store     storage.Store
	snapshots SnapshotStatusProvider
	payments  PaymentGateway

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(store storage.Store, snapshots SnapshotStatusProvider, payments PaymentGateway, buildInfo version.Info) *Handler {
	if store == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "Store"))
	}
	if snapshots == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "SnapshotStatusProvider"))
	}
	if payments == nil {
		panic(fmt.Sprintf(constants.PanicMsgDependencyRequired, "PaymentGateway"))
	}

	return &Handler{
		store:     store,
		snapshots: snapshots,
		payments:  payments,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성의 상태를 확인합니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, degraded, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - dependencies: 의존성별 상태 (storage, catalog_snapshot, mercadopago)
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := map[string]system.DependencyStatus{
		constants.DependencyStorage:         h.checkStorage(c.Request().Context()),
		constants.DependencyCatalogSnapshot: h.checkSnapshot(),
		constants.DependencyMercadoPago:     h.checkPayments(),
	}

	res := system.HealthResponse{
		Status:       overallStatus(deps),
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	}
	if st := h.snapshots.Status(); st.Ready {
		res.Catalog = &system.CatalogStatus{Products: st.Products, RefreshedAt: st.RefreshedAt}
	}

	return c.JSON(http.StatusOK, res)
}

// checkStorage 존재하지 않는 키를 조회하여 저장소의 응답 여부와 지연 시간을 확인합니다.
func (h *Handler) checkStorage(ctx context.Context) system.DependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, constants.HealthProbeTimeout)
	defer cancel()

	start := time.Now()
	_, err := h.store.Get(ctx, constants.HealthProbeKey)
	latency := time.Since(start).Milliseconds()

	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return system.DependencyStatus{
			Status:    constants.HealthStatusUnhealthy,
			LatencyMs: latency,
			Message:   err.Error(),
		}
	}

	return system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   constants.MsgDepStatusHealthy,
	}
}

func (h *Handler) checkSnapshot() system.DependencyStatus {
	st := h.snapshots.Status()

	switch {
	case !st.Ready:
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: constants.MsgDepStatusSnapshotNotReady}
	case st.LastError != "":
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: fmt.Sprintf(constants.MsgDepStatusSnapshotStale, st.LastError)}
	}

	return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

func (h *Handler) checkPayments() system.DependencyStatus {
	if !h.payments.Configured() {
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: constants.MsgDepStatusPaymentNotEnabled}
	}
	return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

// overallStatus 하나라도 unhealthy면 unhealthy, 그 외에 degraded가 있으면 degraded입니다.
func overallStatus(deps map[string]system.DependencyStatus) string {
	status := constants.HealthStatusHealthy
	for _, dep := range deps {
		switch dep.Status {
		case constants.HealthStatusUnhealthy:
			return constants.HealthStatusUnhealthy
		case constants.HealthStatusDegraded:
			status = constants.HealthStatusDegraded
		}
	}
	return status
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 릴리스 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	goVersion := h.buildInfo.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   goVersion,
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
	})
}
