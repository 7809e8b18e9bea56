// Package logger provides process-wide structured logging for gproxy.
// It wraps a zap logger behind printf-style helpers so the core services
// can log without depending on zap types. Adapters that want structured
// fields take the underlying *zap.Logger from L.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatJSON
	base              = zapcore.InfoLevel
	level             = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	log               = build()
)

// build assembles a logger from the package state. Callers hold mu.
func build() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == FormatConsole {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(output)), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Configure sets the minimum level ("debug", "info", "warn", "error") and the encoding.
func Configure(lvl string, f Format) error {
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", lvl, err)
	}
	if f != FormatJSON && f != FormatConsole {
		return fmt.Errorf("unknown log format %q", f)
	}

	mu.Lock()
	defer mu.Unlock()
	base = parsed
	format = f
	if !verbose {
		level.SetLevel(parsed)
	}
	log = build()
	return nil
}

// SetVerbose enables or disables debug logging.
// Disabling restores the level set by Configure.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(base)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build()
}

// L returns the underlying structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.WithOptions(zap.AddCallerSkip(-1))
}

// With returns a structured logger carrying the given fields.
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return log.Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log.Sugar()
}

// Debug logs a debug message. Only emitted in verbose mode or at debug level.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	current().Debugf("=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}
