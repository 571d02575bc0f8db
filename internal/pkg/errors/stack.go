package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip runtime.Callers, captureStack, 공개 생성 함수(New/Wrap 등) 3단계를 건너뛰어
// 에러를 만든 호출 지점이 첫 번째 프레임이 되도록 합니다.
const defaultCallerSkip = 3

// maxStackFrames 에러 하나에 기록하는 최대 프레임 수
const maxStackFrames = 5

// StackFrame 호출 스택의 프레임 하나입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, n)
	callersFrames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
