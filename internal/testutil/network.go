// Package testutil 실제 포트를 여는 서버 테스트에서 함께 쓰는 도우미를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// FreePort 지금 비어 있는 로컬 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 찾지 못했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForPort 서버가 port에서 연결을 받을 때까지 timeout 동안 기다립니다.
func WaitForPort(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("localhost:%d", port)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("%s에서 %v 안에 서버가 시작되지 않았습니다", addr, timeout)
}
