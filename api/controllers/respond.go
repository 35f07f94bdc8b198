package controllers

import (
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// SessionKiller tears the gateway session down once the marketplace stops
// accepting its token: record deleted, cart aggregator dropped, cookie
// cleared. Auth endpoints pass nil; a login failure must not destroy an
// unrelated live session.
type SessionKiller struct {
	Sessions *session.Manager
	Carts    *cart.Registry
	Cookie   config.SessionConfig
}

func respondError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, killer *SessionKiller, err error) {
	if killer != nil && pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			if killer.Sessions != nil {
				if destroyErr := killer.Sessions.Destroy(r.Context(), sessionID); destroyErr != nil && logg != nil {
					logg.Warn(r.Context(), "failed to destroy rejected session")
				}
			}
			if killer.Carts != nil {
				killer.Carts.Drop(sessionID)
			}
			session.ClearCookie(w, killer.Cookie)
		}
	}
	responses.WriteError(r.Context(), logg, w, err)
}
