// Package storage 장바구니, 대기 주문, 웹훅 처리 기록을 보관하는 키-값 저장소를 제공합니다.
//
// 드라이버는 세 가지입니다.
//   - file: 키마다 JSON 파일 하나를 원자적으로 기록합니다 (기본값).
//   - memory: 프로세스 메모리에만 보관합니다 (테스트, 로컬 개발용).
//   - redis: 여러 인스턴스가 같은 데이터를 공유해야 할 때 사용합니다.
package storage

import (
	"context"
	"time"
)

// Store 키-값 저장소 인터페이스입니다.
//
// ttl이 0 이하이면 만료되지 않습니다. 만료된 키는 존재하지 않는 키와 동일하게 취급됩니다.
type Store interface {
	// Get 키의 값을 반환합니다. 키가 없으면 ErrNotFound를 반환합니다.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 키의 값을 덮어씁니다.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX 키가 없을 때만 값을 기록하고, 기록했는지 여부를 반환합니다.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete 키를 삭제합니다. 없는 키를 삭제해도 에러가 아닙니다.
	Delete(ctx context.Context, key string) error

	Close() error
}
