// Package service 메인 프로세스가 함께 시작하고 종료하는 백그라운드 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service serviceStopCtx가 취소될 때까지 실행되는 서비스입니다.
//
// Start는 호출 전에 serviceStopWG.Add(1)이 되어 있다고 가정하며, 서비스가 완전히 종료되거나
// 시작에 실패하면 serviceStopWG.Done()을 한 번 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
