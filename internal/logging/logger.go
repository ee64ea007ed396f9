// Package logging defines a minimal structured-logging interface used across
// authd. Implementations wrap log/slog (development) and zap (production).
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "user signed up", "user_id", id, "email", email)
type Logger interface {
	// Debug logs diagnostic detail that is off in production.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New picks the logger backend for the deployment mode: zap's JSON
// production logger when production is true, a slog text logger otherwise.
func New(production bool) (Logger, error) {
	if production {
		return NewZapProductionLogger()
	}
	return NewSlogTextLogger(nil), nil
}
