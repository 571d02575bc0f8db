package storage

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryStore 프로세스 메모리에만 값을 보관하는 Store 구현입니다.
// 만료된 항목은 접근 시점에 제거됩니다.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	now func() time.Time
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore 메모리 저장소를 생성합니다.
func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(ctx, key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}

	return cloneBytes(e.value), nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = s.newEntry(value, ttl)

	return nil
}

func (s *memoryStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if err := checkKey(ctx, key); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.entries[key] = s.newEntry(value, ttl)

	return true, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

// lookup 호출자는 s.mu를 잡고 있어야 합니다.
func (s *memoryStore) lookup(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *memoryStore) newEntry(value []byte, ttl time.Duration) memoryEntry {
	e := memoryEntry{value: cloneBytes(value)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	return e
}

func checkKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
