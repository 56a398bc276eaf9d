package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"ExpenseTracker/pkg/config"
)

// Logger wraps zerolog and owns the optional rotating file sink.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// New builds the process logger from configuration.
// Console output is always on; LOG_FILE adds a size-rotated file.
func New(cfg *config.Config) (*Logger, error) {
	var console io.Writer = os.Stdout
	if cfg.LogPretty {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}

	if cfg.LogFile == "" {
		return newLogger(console, parseLevel(cfg.LogLevel), cfg.AppEnv), nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogFileMaxSizeMB,
		MaxBackups: cfg.LogFileMaxBackups,
		MaxAge:     cfg.LogFileMaxAgeDays,
	}
	l := newLogger(zerolog.MultiLevelWriter(console, file), parseLevel(cfg.LogLevel), cfg.AppEnv)
	l.closer = file
	return l, nil
}

// Nop discards everything. Handy in tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func newLogger(w io.Writer, level zerolog.Level, env string) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Str("service", "expense-tracker")
	if env != "" {
		zl = zl.Str("env", env)
	}
	return &Logger{Logger: zl.Logger()}
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}
