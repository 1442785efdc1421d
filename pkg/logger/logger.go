package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs a request served by the gateway
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Upstream API logging methods

// LogUpstreamRequest logs a call to the movie ticket API
func (l *Logger) LogUpstreamRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	l.Logger.DebugContext(ctx,
		"Upstream Request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	)
}

// LogUpstreamError logs a failed call to the movie ticket API.
// Status classes mirror what the views care about.
func (l *Logger) LogUpstreamError(ctx context.Context, method, path string, status int, message string) {
	var reason string
	switch status {
	case 401:
		reason = "Unauthorized: Authentication required"
	case 403:
		reason = "Forbidden: Access denied"
	case 404:
		reason = "Not found"
	case 500:
		reason = "Server error"
	default:
		reason = "An error occurred"
	}

	l.Logger.ErrorContext(ctx,
		"Upstream Error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("reason", reason),
		slog.String("message", message),
	)
}

// Session logging methods

// LogAuthSuccess logs a successful login
func (l *Logger) LogAuthSuccess(ctx context.Context, customerID int64, email string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.Int64("customer_id", customerID),
		slog.String("email", email),
	)
}

// LogAuthFailure logs a failed login
func (l *Logger) LogAuthFailure(ctx context.Context, email, reason string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("email", email),
		slog.String("reason", reason),
	)
}

// LogSessionCleared logs a logout
func (l *Logger) LogSessionCleared(ctx context.Context, customerID int64) {
	l.Logger.InfoContext(ctx,
		"Session Cleared",
		slog.Int64("customer_id", customerID),
	)
}

// Purchase logging methods

// LogPurchaseCreated logs a completed wizard submission
func (l *Logger) LogPurchaseCreated(ctx context.Context, purchaseID, movieID, customerID int64, confirmationCode string) {
	l.Logger.InfoContext(ctx,
		"Purchase Created",
		slog.Int64("purchase_id", purchaseID),
		slog.Int64("movie_id", movieID),
		slog.Int64("customer_id", customerID),
		slog.String("confirmation_code", confirmationCode),
	)
}

// LogPurchaseCancelled logs a purchase cancellation
func (l *Logger) LogPurchaseCancelled(ctx context.Context, purchaseID int64) {
	l.Logger.InfoContext(ctx,
		"Purchase Cancelled",
		slog.Int64("purchase_id", purchaseID),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
