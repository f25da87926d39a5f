package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stdout, "")

func newLogger(w io.Writer, appName string) *log.Logger {
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	// 调用方经过本包封装，多跳一层才能显示真实文件行号
	l.SetReportCaller(true)
	l.SetCallerOffset(1)
	return l
}

// InitLog 使用 os.Stdout 输出，appName 作为前缀
func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	SetLevel(logLevel)
}

// SetOutput 测试中把日志重定向到其它 writer
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 默认为 info 级别
func SetLevel(logLevel string) {
	switch strings.ToLower(logLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}
