package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/version"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/constants"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api/model/system"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/snapshot"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSnapshots struct {
	mock.Mock
}

func (m *mockSnapshots) Status() snapshot.Status {
	return m.Called().Get(0).(snapshot.Status)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Configured() bool {
	return m.Called().Bool(0)
}

// failingStore 조회가 항상 실패하는 저장소입니다.
type failingStore struct {
	storage.Store
	err error
}

func (s failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, s.err
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	snapshots := &mockSnapshots{}
	payments := &mockPayments{}

	t.Run("성공", func(t *testing.T) {
		t.Parallel()

		buildInfo := version.Info{Version: "1.0.0"}
		h := NewHandler(store, snapshots, payments, buildInfo)

		require.NotNil(t, h)
		assert.Equal(t, buildInfo, h.buildInfo)
		assert.WithinDuration(t, time.Now(), h.serverStartTime, time.Second)
	})

	tests := []struct {
		name      string
		construct func()
		wantPanic string
	}{
		{"Store nil", func() { NewHandler(nil, snapshots, payments, version.Info{}) }, "Store는 필수입니다"},
		{"Snapshot nil", func() { NewHandler(store, nil, payments, version.Info{}) }, "SnapshotStatusProvider는 필수입니다"},
		{"Payments nil", func() { NewHandler(store, snapshots, nil, version.Info{}) }, "PaymentGateway는 필수입니다"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.PanicsWithValue(t, tt.wantPanic, tt.construct)
		})
	}
}

func TestHandler_HealthCheckHandler(t *testing.T) {
	t.Parallel()

	refreshedAt := time.Date(2025, 12, 1, 14, 0, 0, 0, time.UTC)
	readySnapshot := snapshot.Status{Ready: true, Products: 42, RefreshedAt: refreshedAt}

	tests := []struct {
		name        string
		store       storage.Store
		snapshot    snapshot.Status
		configured  bool
		wantStatus  string
		wantDeps    map[string]string
		wantDepMsg  map[string]string
		wantCatalog *system.CatalogStatus
	}{
		{
			name:       "모두 정상",
			store:      storage.NewMemoryStore(),
			snapshot:   readySnapshot,
			configured: true,
			wantStatus: constants.HealthStatusHealthy,
			wantDeps: map[string]string{
				constants.DependencyStorage:         constants.HealthStatusHealthy,
				constants.DependencyCatalogSnapshot: constants.HealthStatusHealthy,
				constants.DependencyMercadoPago:     constants.HealthStatusHealthy,
			},
			wantCatalog: &system.CatalogStatus{Products: 42, RefreshedAt: refreshedAt},
		},
		{
			name:       "결제 미설정은 degraded",
			store:      storage.NewMemoryStore(),
			snapshot:   readySnapshot,
			configured: false,
			wantStatus: constants.HealthStatusDegraded,
			wantDeps: map[string]string{
				constants.DependencyStorage:         constants.HealthStatusHealthy,
				constants.DependencyCatalogSnapshot: constants.HealthStatusHealthy,
				constants.DependencyMercadoPago:     constants.HealthStatusDegraded,
			},
			wantDepMsg:  map[string]string{constants.DependencyMercadoPago: constants.MsgDepStatusPaymentNotEnabled},
			wantCatalog: &system.CatalogStatus{Products: 42, RefreshedAt: refreshedAt},
		},
		{
			name:       "스냅샷 미준비",
			store:      storage.NewMemoryStore(),
			snapshot:   snapshot.Status{LastError: "Timeout al conectar con el ERP"},
			configured: true,
			wantStatus: constants.HealthStatusDegraded,
			wantDeps: map[string]string{
				constants.DependencyStorage:         constants.HealthStatusHealthy,
				constants.DependencyCatalogSnapshot: constants.HealthStatusDegraded,
				constants.DependencyMercadoPago:     constants.HealthStatusHealthy,
			},
			wantDepMsg: map[string]string{constants.DependencyCatalogSnapshot: constants.MsgDepStatusSnapshotNotReady},
		},
		{
			name:       "마지막 갱신 실패",
			store:      storage.NewMemoryStore(),
			snapshot:   snapshot.Status{Ready: true, Products: 42, RefreshedAt: refreshedAt, LastError: "Timeout al conectar con el ERP"},
			configured: true,
			wantStatus: constants.HealthStatusDegraded,
			wantDeps: map[string]string{
				constants.DependencyStorage:         constants.HealthStatusHealthy,
				constants.DependencyCatalogSnapshot: constants.HealthStatusDegraded,
				constants.DependencyMercadoPago:     constants.HealthStatusHealthy,
			},
			wantDepMsg: map[string]string{
				constants.DependencyCatalogSnapshot: fmt.Sprintf(constants.MsgDepStatusSnapshotStale, "Timeout al conectar con el ERP"),
			},
			wantCatalog: &system.CatalogStatus{Products: 42, RefreshedAt: refreshedAt},
		},
		{
			name:       "저장소 장애는 unhealthy",
			store:      failingStore{err: errors.New("connection refused")},
			snapshot:   readySnapshot,
			configured: false,
			wantStatus: constants.HealthStatusUnhealthy,
			wantDeps: map[string]string{
				constants.DependencyStorage:         constants.HealthStatusUnhealthy,
				constants.DependencyCatalogSnapshot: constants.HealthStatusHealthy,
				constants.DependencyMercadoPago:     constants.HealthStatusDegraded,
			},
			wantDepMsg:  map[string]string{constants.DependencyStorage: "connection refused"},
			wantCatalog: &system.CatalogStatus{Products: 42, RefreshedAt: refreshedAt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snapshots := &mockSnapshots{}
			snapshots.On("Status").Return(tt.snapshot)
			payments := &mockPayments{}
			payments.On("Configured").Return(tt.configured)

			h := NewHandler(tt.store, snapshots, payments, version.Info{})

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			require.NoError(t, h.HealthCheckHandler(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
			require.Len(t, resp.Dependencies, len(tt.wantDeps))
			for name, status := range tt.wantDeps {
				assert.Equal(t, status, resp.Dependencies[name].Status, name)
			}
			for name, msg := range tt.wantDepMsg {
				assert.Equal(t, msg, resp.Dependencies[name].Message, name)
			}
			if tt.wantCatalog == nil {
				assert.Nil(t, resp.Catalog)
			} else {
				require.NotNil(t, resp.Catalog)
				assert.Equal(t, tt.wantCatalog.Products, resp.Catalog.Products)
				assert.True(t, tt.wantCatalog.RefreshedAt.Equal(resp.Catalog.RefreshedAt))
			}

			snapshots.AssertExpectations(t)
			payments.AssertExpectations(t)
		})
	}
}

func TestHandler_VersionHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buildInfo version.Info
		want      system.VersionResponse
	}{
		{
			name: "빌드 정보",
			buildInfo: version.Info{
				Version:     "1.2.0",
				Commit:      "abc1234",
				BuildDate:   "2025-12-01T14:00:00Z",
				BuildNumber: "100",
				GoVersion:   "go1.24.0",
			},
			want: system.VersionResponse{
				Version:     "1.2.0",
				Commit:      "abc1234",
				BuildDate:   "2025-12-01T14:00:00Z",
				BuildNumber: "100",
				GoVersion:   "go1.24.0",
				Platform:    runtime.GOOS + "/" + runtime.GOARCH,
			},
		},
		{
			name:      "비어 있으면 런타임 Go 버전",
			buildInfo: version.Info{},
			want: system.VersionResponse{
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(storage.NewMemoryStore(), &mockSnapshots{}, &mockPayments{}, tt.buildInfo)

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/version", nil), rec)

			require.NoError(t, h.VersionHandler(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.VersionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp)
		})
	}
}
