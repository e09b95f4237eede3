// Package log provides category-scoped structured logging for giterra.
//
// Callers log with a category and alternating key/value pairs:
//
//	log.Debug(log.CatGit, "Reading commit log", "ref", ref, "limit", limit)
//	log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", path)
//
// Until Init is called every helper is a no-op, so library code and tests
// never write to stderr by accident.
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category identifies the subsystem that emitted a log line.
type Category string

const (
	CatConfig    Category = "config"
	CatGit       Category = "git"
	CatPlanet    Category = "planet"
	CatCLI       Category = "cli"
	CatTelemetry Category = "telemetry"
	CatWatch     Category = "watch"
	CatServer    Category = "server"
)

// Options controls the logger installed by Init.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Development switches to zap's console encoder with caller info.
	Development bool
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init installs a zap logger built from opts. It replaces any previous logger.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.Development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), ParseLevel(opts.Level))
	l := zap.New(core)
	if opts.Development {
		l = l.WithOptions(zap.AddCaller(), zap.AddCallerSkip(1))
	}

	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sync()
}

// ParseLevel maps a level name onto a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func withCategory(cat Category, kv []any) []any {
	return append([]any{"cat", string(cat)}, kv...)
}

// Debug logs at debug level.
func Debug(cat Category, msg string, kv ...any) {
	current().Debugw(msg, withCategory(cat, kv)...)
}

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) {
	current().Infow(msg, withCategory(cat, kv)...)
}

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) {
	current().Warnw(msg, withCategory(cat, kv)...)
}

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) {
	current().Errorw(msg, withCategory(cat, kv)...)
}

// ErrorErr logs at error level with err attached under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	current().Errorw(msg, withCategory(cat, append([]any{"error", err}, kv...))...)
}

// SafeGo runs fn in a goroutine and logs instead of crashing on panic.
func SafeGo(cat Category, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(cat, "Recovered from panic", "goroutine", name, "panic", r)
			}
		}()
		fn()
	}()
}
