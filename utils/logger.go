package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide logger behind the LogX helpers. It discards
// everything until InitLogger runs, which keeps tests quiet.
var logger = zerolog.Nop()

// LoggerConfig controls where and how verbosely the service logs
type LoggerConfig struct {
	Level string
	Dir   string
	Env   string
}

// InitLogger initializes the logger
func InitLogger(cfg LoggerConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %v", err)
		}
		timestamp := time.Now().Format("2006-01-02")
		file, err := os.OpenFile(
			filepath.Join(cfg.Dir, fmt.Sprintf("pricesphere-%s.log", timestamp)),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0644,
		)
		if err != nil {
			return fmt.Errorf("failed to open log file: %v", err)
		}
		out = zerolog.MultiLevelWriter(out, file)
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Str("app", AppName).Logger()
	return nil
}

// Logger exposes the structured logger for callers that want fields
func Logger() *zerolog.Logger {
	return &logger
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	logger.Info().Msgf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	logger.Error().Msgf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	logger.Debug().Msgf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	logger.Info().
		Str("method", method).
		Str("path", path).
		Str("ip", ip).
		Int("status", status).
		Dur("duration", duration).
		Msg("request")
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	logger.Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
}
