package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/sangabriel-catalog/internal/cart"
	"github.com/darkkaiser/sangabriel-catalog/internal/checkout"
	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	"github.com/darkkaiser/sangabriel-catalog/internal/pkg/version"
	"github.com/darkkaiser/sangabriel-catalog/internal/service"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/api"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/erp"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/payment/mercadopago"
	"github.com/darkkaiser/sangabriel-catalog/internal/service/snapshot"
	"github.com/darkkaiser/sangabriel-catalog/internal/storage"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

// @title San Gabriel Catalog API
// @version 1.0.0
// @description San Gabriel 스토어프런트의 카탈로그, 장바구니, 결제 REST API입니다.
// @description
// @description ## 주요 기능
// @description - ERP 카탈로그 조회 (실시간 및 스냅샷)
// @description - 필터, 검색, 정렬, 인쇄용 카탈로그 책 배치
// @description - 서버 저장 장바구니
// @description - Mercado Pago 결제, WhatsApp 계좌 이체 주문
// @description
// @description ## 웹훅 서명
// @description mercadopago.webhook_secret이 설정되면 /api/webhooks/mercadopago 요청의 X-Signature 헤더를 검증합니다.
//
// @contact.name DarkKaiser
// @contact.url https://github.com/DarkKaiser
//
// @BasePath /

const (
	banner = `
  ____                ____       _          _      _
 / ___|  __ _ _ __   / ___| __ _| |__  _ __(_) ___| |
 \___ \ / _' | '_ \ | |  _ / _' | '_ \| '__| |/ _ \ |
  ___) | (_| | | | || |_| | (_| | |_) | |  | |  __/ |
 |____/ \__,_|_| |_| \____|\__,_|_.__/|_|  |_|\___|_|
                                                  %s
                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	if err := run(appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("서비스 초기화 실패로 프로그램을 종료합니다")

		appLogCloser.Close()
		os.Exit(1)
	}
}

// run 서비스를 생성하고 시작한 뒤 종료 시그널을 기다립니다.
func run(appConfig *config.AppConfig, buildInfo version.Info) error {
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 저장소 (장바구니, 대기 주문, 웹훅 중복 방지 기록)
	store, err := storage.New(serviceStopCtx, appConfig.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	// 서비스를 생성하고 초기화한다.
	carts := cart.NewRegistry(store)
	catalogService := snapshot.NewService(erp.NewClient(appConfig.ERP), appConfig.Catalog.RefreshSpec)
	payments := mercadopago.NewClient(appConfig.MercadoPago)

	checkoutService := checkout.NewService(appConfig.Checkout, appConfig.App.URL, carts, store, payments)
	defer checkoutService.Close()

	apiService := api.NewService(appConfig, api.Dependencies{
		Store:    store,
		Catalog:  catalogService,
		Carts:    carts,
		Checkout: checkoutService,
		Payments: payments,
	}, buildInfo)

	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{catalogService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			return err
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	applog.WithComponent("main").Info("종료 시그널 수신")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done

	return nil
}
