package config

// EnvPrefix is passed to envconfig.Process; individual tags carry the full
// MERCATO_ names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "MERCATO_APP_ENV"
	EnvPort            = "MERCATO_APP_PORT"
	EnvLogLevel        = "MERCATO_LOG_LEVEL"
	EnvUpstreamBaseURL = "MERCATO_UPSTREAM_BASE_URL"
	EnvRedisURL        = "MERCATO_REDIS_URL"
	EnvSessionTTL      = "MERCATO_SESSION_TTL"
)
