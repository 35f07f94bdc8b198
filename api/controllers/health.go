package controllers

import (
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercato-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercato-Env", cfg.App.Env)

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
