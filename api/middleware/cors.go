package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
}

// CORS applies the gateway's allowed origin policy. Credentials stay on so
// the session cookie travels with browser requests.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
