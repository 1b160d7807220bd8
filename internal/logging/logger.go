// Package logging builds the application's zap logger and adapts it to the
// loggers expected by Wails and gorm.
package logging

import (
	"fmt"
	"log"
	"strings"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger. development switches to the console encoder.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel accepts the usual names plus "warning" and "trace".
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// WailsLevel maps a level name to the Wails runtime log level.
func WailsLevel(level string) wailslogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return wailslogger.TRACE
	case "debug":
		return wailslogger.DEBUG
	case "warn", "warning":
		return wailslogger.WARNING
	case "error":
		return wailslogger.ERROR
	default:
		return wailslogger.INFO
	}
}

// StdLog returns a *log.Logger that writes into zap at info level. gorm's
// logger takes anything with Printf.
func StdLog(l *zap.Logger) *log.Logger {
	return zap.NewStdLog(l.WithOptions(zap.AddCallerSkip(1)))
}

// wailsLogger routes runtime.Log* calls from the Wails runtime into zap.
type wailsLogger struct {
	l *zap.SugaredLogger
}

// NewWailsLogger adapts l to the logger interface of the Wails runtime.
func NewWailsLogger(l *zap.Logger) wailslogger.Logger {
	return &wailsLogger{l: l.Named("wails").Sugar()}
}

func (w *wailsLogger) Print(message string)   { w.l.Info(message) }
func (w *wailsLogger) Trace(message string)   { w.l.Debug(message) }
func (w *wailsLogger) Debug(message string)   { w.l.Debug(message) }
func (w *wailsLogger) Info(message string)    { w.l.Info(message) }
func (w *wailsLogger) Warning(message string) { w.l.Warn(message) }
func (w *wailsLogger) Error(message string)   { w.l.Error(message) }
func (w *wailsLogger) Fatal(message string)   { w.l.Fatal(message) }
