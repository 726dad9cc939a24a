package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/config"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
)

// InitLogger initializes the application logger with the given configuration
func InitLogger(cfg *config.AppConfig) {
	// Set global log level
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		// Default to info level if invalid
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	setupStandardLogger(cfg, os.Stdout)

	log.Info().Msg("Logger initialized")
}

// setupStandardLogger configures the global zerolog logger
func setupStandardLogger(cfg *config.AppConfig, out io.Writer) {
	// Configure logger output format
	output := out
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    false, // Enable colors for development
		}
	}

	// Set global logger
	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()
}

// MaskPhoneNumber hides all but the last four digits of a number unless the
// logger runs at debug level. Short values are masked completely.
func MaskPhoneNumber(number string) string {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		return number
	}
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

// RequestLogger creates a logger with request-specific context
func RequestLogger(requestID, method, path string) zerolog.Logger {
	return log.With().
		Str(constants.LogFieldRequestID, requestID).
		Str("method", method).
		Str("path", path).
		Logger()
}

// LogHTTPRequest logs an HTTP request with request details
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	// Only log some paths at debug level to reduce noise
	if path == constants.HealthPath || path == constants.DefaultMetricsPath || path == constants.PollPath {
		if zerolog.GlobalLevel() != zerolog.DebugLevel {
			return // Skip logging entirely for high-volume endpoints in non-debug mode
		}
	}

	event := log.Debug()

	// Elevate error responses to warning/error level
	if statusCode >= 400 && statusCode < 500 {
		event = log.Warn()
	} else if statusCode >= 500 {
		event = log.Error()
	} else if strings.HasPrefix(path, constants.APIBasePath) {
		// Log API requests at info level
		event = log.Info()
	}

	// Include request details
	event.
		Str(constants.LogFieldRequestID, requestID).
		Str("method", method).
		Str("path", MaskPath(path)).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// MaskPath masks phone numbers that appear as path segments.
func MaskPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if isDigits(segment) && len(segment) >= 7 {
			segments[i] = MaskPhoneNumber(segment)
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.DevInfo != "" {
		event = event.Str("dev_info", appErr.DevInfo)
	}

	// Add context information
	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a panic recovered while serving a request
func LogPanic(requestID, method, path string, recovered interface{}, stack []byte) {
	log.Error().
		Str(constants.LogFieldRequestID, requestID).
		Str("method", method).
		Str("path", MaskPath(path)).
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}

// LogFileIO logs one read, write or stat of a jcblock file for debugging
func LogFileIO(op, path string, size int, duration time.Duration, err error) {
	event := log.Debug()

	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("op", op).
		Str(constants.LogFieldFile, path).
		Int("bytes", size).
		Dur("duration", duration).
		Msg("File access")
}

// LogFileStep logs one read-modify-write step against a jcblock file
func LogFileStep(operationID, step, path, number string, changed bool, err error) {
	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str(constants.LogFieldOperation, operationID).
		Str(constants.LogFieldStep, step).
		Str(constants.LogFieldFile, path).
		Str(constants.LogFieldNumber, MaskPhoneNumber(number)).
		Bool(constants.LogFieldChanged, changed).
		Msg(constants.LogCategoryFile)
}

// LogCallerEvent logs a completed caller mutation
func LogCallerEvent(event, operationID, number string, fields map[string]string) {
	logEvent := log.Info().
		Str("event", event).
		Str(constants.LogFieldOperation, operationID).
		Str(constants.LogFieldNumber, MaskPhoneNumber(number))

	for key, value := range fields {
		logEvent = logEvent.Str(key, value)
	}

	logEvent.Msg(constants.LogCategoryCaller)
}

// GetLogLevel returns the current global log level as a string
func GetLogLevel() string {
	return zerolog.GlobalLevel().String()
}

// SetLogLevel updates the global log level
func SetLogLevel(level string) error {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}

	zerolog.SetGlobalLevel(parsedLevel)
	log.Info().Str("level", parsedLevel.String()).Msg("Log level changed")

	return nil
}
