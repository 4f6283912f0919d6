package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

// LogLevel represents different log levels for service operations
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// maxLoggedErrors limits per-entry detail to avoid log spam
const maxLoggedErrors = 5

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, courseID, userID string, duration time.Duration, err error) {
	logLevel := LogLevelInfo
	status := "success"

	if err != nil {
		logLevel = LogLevelError
		status = "error"

		// Adjust log level based on error type
		if IsConfiguration(err) {
			logLevel = LogLevelWarn
			status = "configuration_error"
		} else if IsValidation(err) {
			logLevel = LogLevelWarn
			status = "validation_error"
		} else if IsNotFound(err) {
			logLevel = LogLevelInfo
			status = "not_found"
		} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logLevel = LogLevelWarn
			status = "canceled"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("course_id", courseID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if userID != "" {
		attrs = append(attrs, slog.String("user_id", userID))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var configErr *ConfigurationError
		if errors.As(err, &configErr) {
			attrs = append(attrs,
				slog.String("rule", configErr.Rule),
				slog.Int("validation_errors_count", len(configErr.Errors)))
		}
	}

	// Add caller information for unexpected errors
	if logLevel == LogLevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	message := fmt.Sprintf("%s operation %s", operation, status)

	switch logLevel {
	case LogLevelDebug:
		if l.config.EnableDebug {
			l.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
		}
	case LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, message, attrs...)
	case LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, message, attrs...)
	case LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
	}
}

func (l *ServiceLogger) LogConfigurationError(ctx context.Context, operation, courseID string, configErr *ConfigurationError) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("course_id", courseID),
		slog.String("rule", configErr.Rule),
		slog.Int("error_count", len(configErr.Errors)),
	}

	for i, err := range configErr.Errors {
		if i >= maxLoggedErrors {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
			slog.Any("value", err.Value),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Invalid admission criteria", attrs...)
}

// LogDataWarnings reports assessments that were excluded from an evaluation
func (l *ServiceLogger) LogDataWarnings(ctx context.Context, courseID, userID string, warnings []models.DataWarning) {
	if len(warnings) == 0 {
		return
	}

	attrs := []slog.Attr{
		slog.String("course_id", courseID),
		slog.String("user_id", userID),
		slog.Int("warning_count", len(warnings)),
	}
	for i, w := range warnings {
		if i >= maxLoggedErrors {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("warning_%d", i+1),
			slog.String("code", string(w.Code)),
			slog.String("assessment_id", w.AssessmentID),
			slog.String("assignment_id", w.AssignmentID),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Assessments excluded from admission evaluation", attrs...)
}

// ===== AUDIT LOGGING =====

func (l *ServiceLogger) LogAuditEvent(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.Type)),
		slog.String("resource_id", event.ResourceID),
		slog.String("resource_type", event.ResourceType),
		slog.String("action", event.Action),
		slog.Time("timestamp", event.Timestamp),
	}

	if event.UserID != nil {
		attrs = append(attrs, slog.String("user_id", *event.UserID))
	}

	if event.NewValue != nil {
		attrs = append(attrs, slog.Any("new_value", event.NewValue))
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf("Audit: %s %s", event.Action, event.ResourceType), attrs...)
}

// ===== STRUCTURED LOGGING TYPES =====

type AuditEventType string

const (
	AuditEventUpdate AuditEventType = "update"
)

type AuditEvent struct {
	Type         AuditEventType `json:"type"`
	UserID       *string        `json:"user_id,omitempty"`
	ResourceID   string         `json:"resource_id"`
	ResourceType string         `json:"resource_type"`
	Action       string         `json:"action"`
	NewValue     interface{}    `json:"new_value,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger wraps operations with automatic logging
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	courseID  string
	userID    string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, courseID, userID string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		courseID:  courseID,
		userID:    userID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(err error) {
	duration := time.Since(cl.startTime)
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.courseID, cl.userID, duration, err)

	// Log specific error types with additional context
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		cl.logger.LogConfigurationError(cl.ctx, cl.operation, cl.courseID, configErr)
	}
}
