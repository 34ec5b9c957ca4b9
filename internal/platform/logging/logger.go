// Package logging provides the process-wide zap logger and request-scoped
// helpers that attach trace metadata to every entry.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/cardfolio/internal/platform/timeutil"
)

// ServiceName is attached to every log entry.
const ServiceName = "cardfolio"

// Options adjusts the process logger.
type Options struct {
	// Level is a zap level name; empty keeps the current level.
	Level string
	// Stderr sends entries to stderr, for tools that own stdout.
	Stderr bool
}

var (
	mu     sync.Mutex
	base   *zap.Logger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	stderr bool
)

// Cloud Logging severity names.
var severities = map[zapcore.Level]string{
	zapcore.DebugLevel:  "DEBUG",
	zapcore.InfoLevel:   "INFO",
	zapcore.WarnLevel:   "WARNING",
	zapcore.ErrorLevel:  "ERROR",
	zapcore.DPanicLevel: "CRITICAL",
	zapcore.PanicLevel:  "ALERT",
	zapcore.FatalLevel:  "EMERGENCY",
}

func encodeSeverity(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	s, ok := severities[l]
	if !ok {
		s = "DEFAULT"
	}
	enc.AppendString(s)
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(timeutil.RFC3339Micros))
}

func build() (*zap.Logger, error) {
	sink := "stdout"
	if stderr {
		sink = "stderr"
	}
	cfg := zap.Config{
		Level:            level,
		Encoding:         "json",
		OutputPaths:      []string{sink},
		ErrorOutputPaths: []string{sink},
		InitialFields:    map[string]any{"service": ServiceName},
		Sampling:         &zap.SamplingConfig{Initial: 100, Thereafter: 100},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "severity",
			MessageKey:     "message",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     encodeTime,
			EncodeLevel:    encodeSeverity,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build(zap.AddCaller())
}

// Configure applies opts and rebuilds the process logger. On error the
// previous logger stays in place.
func Configure(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level.SetLevel(l)
	}
	stderr = opts.Stderr
	l, err := build()
	if err != nil {
		return err
	}
	base = l
	return nil
}

// SetLevel changes the minimum enabled level without rebuilding the logger.
func SetLevel(name string) error {
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// Logger returns the process logger, building it with default options on
// first use.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		l, err := build()
		if err != nil {
			l = zap.NewNop()
		}
		base = l
	}
	return base
}

// Sync flushes buffered entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}
