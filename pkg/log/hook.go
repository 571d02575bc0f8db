package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 엔트리를 여러 Writer로 분배합니다.
//
//   - console: 모든 레벨
//   - critical: ERROR 이상
//   - verbose: DEBUG 이하 (설정된 경우 main에는 기록하지 않음)
//   - main: INFO 이상, verbose가 없으면 모든 레벨
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	// 콘솔 쓰기 실패는 로깅 전체를 막지 않습니다.
	if h.consoleWriter != nil {
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	if entry.Level <= ErrorLevel && h.criticalWriter != nil {
		if _, err := h.criticalWriter.Write(msg); err != nil {
			record(err)
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Critical 로그 파일 쓰기 실패: %v\n", err)
		}
	}

	if entry.Level >= DebugLevel && h.verboseWriter != nil {
		if _, err := h.verboseWriter.Write(msg); err != nil {
			record(err)
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] Verbose 로그 파일 쓰기 실패: %v\n", err)
		}
		return firstErr
	}

	if h.mainWriter != nil {
		if _, err := h.mainWriter.Write(msg); err != nil {
			record(err)
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] Main 로그 파일 쓰기 실패: %v\n", err)
		}
	}

	return firstErr
}

// Close 이후의 모든 Fire 호출을 무시하도록 전환합니다. 진행 중인 Fire가 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	return nil
}
