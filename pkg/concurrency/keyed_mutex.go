// Package concurrency 키 단위 동시성 제어 도구를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키별로 독립적인 Mutex를 제공합니다.
// 서로 다른 키(장바구니 ID, 저장소 키 등)에 대한 작업은 병렬로 처리되며,
// 참조 카운트가 0이 된 키는 맵에서 제거됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock 지정된 키의 락을 획득합니다.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

// Unlock 지정된 키의 락을 해제합니다. 잠기지 않은 키를 해제하면 패닉이 발생합니다.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도: " + key)
	}

	e.mu.Unlock()
	e.refs--
	if e.refs <= 0 {
		delete(km.locks, key)
	}
}

// WithLock 키의 락을 잡은 상태로 fn을 실행합니다.
func (km *KeyedMutex) WithLock(key string, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)
	return fn()
}

// Len 현재 잠겨 있거나 대기 중인 키의 수를 반환합니다.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}
