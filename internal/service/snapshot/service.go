// Package snapshot ERP 카탈로그의 최근 조회 결과를 보관하고 주기적으로 갱신합니다.
//
// 상품 목록, 책 보기, 견적 링크처럼 매 요청마다 ERP를 호출할 필요가 없는 조회는 스냅샷을 사용합니다.
// 동시에 들어온 갱신 요청은 singleflight로 하나의 ERP 호출로 합쳐집니다.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/internal/catalog"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/erp"
	"github.com/darkkaiser/sangabriel-catalog/pkg/cronx"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

const component = "catalog.snapshot"

// refreshTimeout 예약된 갱신 하나의 최대 실행 시간
const refreshTimeout = 60 * time.Second

const flightKey = "catalog"

// Status 스냅샷 상태입니다.
type Status struct {
	Ready       bool      `json:"ready"`
	Products    int       `json:"products"`
	RefreshedAt time.Time `json:"refreshed_at,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

// Service 카탈로그 스냅샷 서비스입니다.
type Service struct {
	fetcher     erp.CatalogFetcher
	refreshSpec string

	group singleflight.Group

	mu          sync.RWMutex
	current     *catalog.Response
	refreshedAt time.Time
	lastErr     error

	cron      *cron.Cron
	warmup    sync.WaitGroup
	running   bool
	runningMu sync.Mutex

	now func() time.Time
}

// NewService 새로운 Service를 생성합니다. refreshSpec은 cronx.StandardParser 형식입니다.
func NewService(fetcher erp.CatalogFetcher, refreshSpec string) *Service {
	if fetcher == nil {
		panic("CatalogFetcher는 필수입니다")
	}

	return &Service{
		fetcher:     fetcher,
		refreshSpec: refreshSpec,
		now:         time.Now,
	}
}

// Start 첫 스냅샷을 백그라운드에서 불러오고 주기적 갱신을 시작합니다.
//
// serviceStopCtx가 취소되면 갱신을 멈추고 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: 카탈로그 스냅샷 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("카탈로그 스냅샷 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)
	if _, err := c.AddFunc(s.refreshSpec, s.scheduledRefresh); err != nil {
		serviceStopWG.Done()
		return newErrInvalidRefreshSpec(err, s.refreshSpec)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	s.warmup.Add(1)
	go func() {
		defer s.warmup.Done()

		if _, err := s.Refresh(serviceStopCtx); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err.Error(),
			}).Warn("첫 카탈로그 스냅샷 조회 실패: 다음 갱신 주기 또는 첫 요청에서 다시 시도합니다")
		}
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"refresh_spec": s.refreshSpec,
	}).Info("서비스 시작 완료: 카탈로그 스냅샷 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 주기적 갱신을 멈추고 실행 중인 갱신이 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: 카탈로그 스냅샷 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.warmup.Wait()

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("카탈로그 스냅샷 서비스 종료 완료")
}

func (s *Service) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := s.Refresh(ctx); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err.Error(),
		}).Warn("예약된 카탈로그 스냅샷 갱신 실패: 이전 스냅샷을 유지합니다")
	}
}

// Refresh ERP에서 카탈로그를 조회해 스냅샷을 바꿉니다. 실패하면 이전 스냅샷을 유지합니다.
//
// 진행 중인 조회가 있으면 새로 호출하지 않고 그 결과를 함께 받습니다. 호출자의 ctx가 취소되면
// 기다리기를 멈추지만, 진행 중인 조회는 다른 호출자를 위해 계속됩니다.
func (s *Service) Refresh(ctx context.Context) (catalog.Response, error) {
	ch := s.group.DoChan(flightKey, func() (any, error) {
		resp, err := s.fetcher.FetchCatalog(context.WithoutCancel(ctx))
		s.record(resp, err)
		return resp, err
	})

	select {
	case <-ctx.Done():
		return catalog.Response{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return catalog.Response{}, res.Err
		}
		return res.Val.(catalog.Response), nil
	}
}

func (s *Service) record(resp catalog.Response, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		return
	}

	s.current = &resp
	s.refreshedAt = s.now()
	s.lastErr = nil

	applog.WithComponentAndFields(component, applog.Fields{
		"products":   len(resp.Products),
		"categories": len(resp.Categories),
	}).Debug("카탈로그 스냅샷 갱신 완료")
}

// Live ERP를 호출해 최신 카탈로그를 반환합니다. 조회 결과로 스냅샷도 갱신됩니다.
func (s *Service) Live(ctx context.Context) (catalog.Response, error) {
	return s.Refresh(ctx)
}

// Snapshot 보관 중인 스냅샷을 반환합니다. 아직 없으면 ERP에서 불러옵니다.
func (s *Service) Snapshot(ctx context.Context) (catalog.Response, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return *current, nil
	}

	return s.Refresh(ctx)
}

// Status 스냅샷 상태를 반환합니다.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Ready:       s.current != nil,
		RefreshedAt: s.refreshedAt,
	}
	if s.current != nil {
		st.Products = len(s.current.Products)
	}
	if s.lastErr != nil {
		st.LastError = erp.UserMessage(s.lastErr)
	}
	return st
}
