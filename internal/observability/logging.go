// Package observability provides logging and metrics.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// StoreLogger provides structured logging for record store operations.
type StoreLogger struct {
	collection string
	logger     *Logger
}

// NewStoreLogger creates a new StoreLogger for the given collection.
func NewStoreLogger(collection string) *StoreLogger {
	return &StoreLogger{
		collection: collection,
		logger:     GlobalLogger,
	}
}

// LogWrite logs a record store write.
func (l *StoreLogger) LogWrite(ctx context.Context, fields map[string]interface{}) {
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", "write"),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store write", attrs...)
}

// LogError logs a record store failure. Store errors are swallowed by
// callers, so this is the only trace they leave.
func (l *StoreLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// LogCorrupt logs a record that failed to deserialize and was skipped.
func (l *StoreLogger) LogCorrupt(ctx context.Context, id string) {
	l.logger.WarnContext(ctx, "store corrupt record",
		slog.String("collection", l.collection),
		slog.String("id", id),
	)
}

// ServiceLogger provides structured logging for domain service calls.
type ServiceLogger struct {
	service string
	logger  *Logger
}

// NewServiceLogger creates a new ServiceLogger for the named service.
func NewServiceLogger(service string) *ServiceLogger {
	return &ServiceLogger{service: service, logger: GlobalLogger}
}

// LogCall logs a service method call.
func (l *ServiceLogger) LogCall(ctx context.Context, method string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("service", l.service),
		slog.String("method", method),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "service call", attrs...)
}

// LogError logs a service method failure.
func (l *ServiceLogger) LogError(ctx context.Context, method string, err error) {
	l.logger.ErrorContext(ctx, "service error",
		slog.String("service", l.service),
		slog.String("method", method),
		slog.String("error", err.Error()),
	)
}
