package middleware

import (
	"context"

	"github.com/dmarquez-dev/mercato-storefront/internal/session"
)

type contextKey string

const ctxSession contextKey = "session_record"

// WithSession injects the loaded session record into the context.
func WithSession(ctx context.Context, record *session.Record) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, record)
}

// SessionFromContext returns the session record, or nil when the request is
// unauthenticated.
func SessionFromContext(ctx context.Context) *session.Record {
	if ctx == nil {
		return nil
	}
	if record, ok := ctx.Value(ctxSession).(*session.Record); ok {
		return record
	}
	return nil
}

// SessionIDFromContext returns the session id, or empty when absent.
func SessionIDFromContext(ctx context.Context) string {
	if record := SessionFromContext(ctx); record != nil {
		return record.ID
	}
	return ""
}

// RoleFromContext returns the authenticated user's role, or empty.
func RoleFromContext(ctx context.Context) string {
	if record := SessionFromContext(ctx); record != nil {
		return record.User.Role
	}
	return ""
}
