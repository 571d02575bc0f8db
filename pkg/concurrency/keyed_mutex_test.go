package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SameKeySerializes(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("cart-1")
			counter++
			km.Unlock("cart-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, km.Len(), "사용이 끝난 키는 정리되어야 합니다")
}

func TestKeyedMutex_DifferentKeysIndependent(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done

	assert.Equal(t, 1, km.Len())
}

func TestKeyedMutex_WithLock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	errBoom := errors.New("boom")

	err := km.WithLock("k", func() error {
		assert.Equal(t, 1, km.Len())
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("none") })
}
