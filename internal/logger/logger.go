package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/blogwave/blogwave/internal/config"
)

// Logger is the application logger instance
var Logger zerolog.Logger

// Init builds the application logger from the logging configuration and
// installs it as the zerolog global logger.
func Init(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.Level))

	Logger = New(os.Stdout, cfg.Format)
	log.Logger = Logger

	return Logger
}

// New returns a logger writing to out in the given format (json or console).
func New(out io.Writer, format string) zerolog.Logger {
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).With().
		Timestamp().
		Caller().
		Str("service", "blogwave").
		Logger()
}

// parseLogLevel parses string log level to zerolog level
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns the configured logger instance
func GetLogger() zerolog.Logger {
	return Logger
}
