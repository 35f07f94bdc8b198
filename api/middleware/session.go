package middleware

import (
	"context"
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/pkg/auth"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// SessionLoader is the slice of the session manager this middleware uses.
type SessionLoader interface {
	Get(ctx context.Context, sessionID string) (*session.Record, error)
	Touch(ctx context.Context, sessionID string) error
}

// Session resolves the session cookie into a session record and seeds the
// context with it plus the upstream bearer token. Requests without a valid
// session pass through unauthenticated; a dead cookie is cleared on the way.
func Session(sessions SessionLoader, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := session.ReadCookie(r, cfg)
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			record, err := sessions.Get(ctx, sessionID)
			if err != nil {
				if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
					session.ClearCookie(w, cfg)
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			if touchErr := sessions.Touch(ctx, record.ID); touchErr != nil && logg != nil {
				logg.Warn(logg.WithSessionID(ctx, record.ID), "failed to extend session ttl")
			}

			ctx = WithSession(ctx, record)
			ctx = auth.ContextWithToken(ctx, record.Token)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, record.ID)
				ctx = logg.WithUserID(ctx, record.User.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no session.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated requests whose user lacks the role.
func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
