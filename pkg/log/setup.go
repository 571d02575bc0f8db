package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	setupOnce      sync.Once
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화합니다.
//
// 프로세스 생명주기 동안 한 번만 실행되며, 이후 호출은 최초 결과(Closer, 에러)를 그대로 반환합니다.
// 반환된 Closer는 종료 시점에 반드시 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})
	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}

	newFile := func(suffix string) *lumberjack.Logger {
		name := opts.Name
		if suffix != "" {
			name += "." + suffix
		}
		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, fmt.Sprintf("%s.%s", name, fileExt)),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	h := &hook{
		formatter: newTextFormatter(opts.CallerPathPrefix),
	}
	var closers []io.Closer

	mainFile := newFile("")
	h.mainWriter = mainFile
	closers = append(closers, mainFile)

	if opts.EnableCriticalLog {
		f := newFile("critical")
		h.criticalWriter = f
		closers = append(closers, f)
	}
	if opts.EnableVerboseLog {
		f := newFile("verbose")
		h.verboseWriter = f
		closers = append(closers, f)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	logrus.AddHook(h)

	c := &closer{closers: closers, hook: h}

	// Fatal 로그로 프로세스가 종료되기 직전에 버퍼를 비웁니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

func newTextFormatter(callerPathPrefix string) *TextFormatter {
	return &TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if callerPathPrefix != "" {
				if cut, found := strings.CutPrefix(function, callerPathPrefix); found {
					function = "..." + cut
				}
			}
			return
		},
	}
}
