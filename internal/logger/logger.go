package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// DocumentKey is the context key for the document being verified
	DocumentKey ContextKey = "document"
	// JurisdictionKey is the context key for the jurisdiction code
	JurisdictionKey ContextKey = "jurisdiction"
	// JobKey is the context key for a batch job index
	JobKey ContextKey = "job"
	// RunKey is the context key for a batch run ID
	RunKey ContextKey = "run"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Init initializes the global slog logger on stderr.
// Stdout stays reserved for report output.
func Init(cfg *Config) {
	InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter initializes the global slog logger on w
func InitWithWriter(cfg *Config, w io.Writer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithDocument returns a context tagged with a document name
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, DocumentKey, name)
}

// WithJurisdiction returns a context tagged with a jurisdiction code
func WithJurisdiction(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, JurisdictionKey, code)
}

// WithJob returns a context tagged with a batch job index
func WithJob(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, JobKey, index)
}

// WithRun returns a context tagged with a batch run ID
func WithRun(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunKey, runID)
}

// WithContext returns a logger with context values extracted
func WithContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if run, ok := ctx.Value(RunKey).(string); ok && run != "" {
		logger = logger.With("run", run)
	}
	if doc, ok := ctx.Value(DocumentKey).(string); ok && doc != "" {
		logger = logger.With("document", doc)
	}
	if j, ok := ctx.Value(JurisdictionKey).(string); ok && j != "" {
		logger = logger.With("jurisdiction", j)
	}
	if job, ok := ctx.Value(JobKey).(int); ok {
		logger = logger.With("job", job)
	}

	return logger
}

// Info logs at info level with context
func Info(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...)
}

// Debug logs at debug level with context
func Debug(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...)
}

// Warn logs at warn level with context
func Warn(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...)
}

// Error logs at error level with context
func Error(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...)
}
