// Package log logrus 기반의 애플리케이션 로깅을 제공합니다.
//
// 로그는 Hook을 통해 레벨별 파일(main, critical, verbose)과 콘솔로 분배되며,
// 모든 컴포넌트는 WithComponent / WithComponentAndFields로 component 필드를 붙여 기록합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	Hook          = logrus.Hook
	Logger        = logrus.Logger
	Formatter     = logrus.Formatter
	JSONFormatter = logrus.JSONFormatter
	TextFormatter = logrus.TextFormatter
)
