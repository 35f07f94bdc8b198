package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Media    MediaConfig
	Metrics  MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.ensureBaseURL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MERCATO_APP_ENV" required:"true"`
	Port         string `envconfig:"MERCATO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MERCATO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MERCATO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig locates the marketplace REST API the gateway fronts.
type UpstreamConfig struct {
	BaseURL        string        `envconfig:"MERCATO_UPSTREAM_BASE_URL" required:"true"`
	Timeout        time.Duration `envconfig:"MERCATO_UPSTREAM_TIMEOUT" default:"10s"`
	RetryWait      time.Duration `envconfig:"MERCATO_UPSTREAM_RETRY_WAIT" default:"250ms"`
	UploadBasePath string        `envconfig:"MERCATO_UPSTREAM_UPLOAD_BASE_PATH" default:"/uploads"`
}

func (u *UpstreamConfig) ensureBaseURL() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvUpstreamBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvUpstreamBaseURL, u.BaseURL)
	}
	u.BaseURL = strings.TrimRight(u.BaseURL, "/")
	return nil
}

type SessionConfig struct {
	CookieName   string        `envconfig:"MERCATO_SESSION_COOKIE_NAME" default:"mercato_session"`
	CookieDomain string        `envconfig:"MERCATO_SESSION_COOKIE_DOMAIN"`
	CookieSecure bool          `envconfig:"MERCATO_SESSION_COOKIE_SECURE" default:"true"`
	TTL          time.Duration `envconfig:"MERCATO_SESSION_TTL" default:"24h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MERCATO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MERCATO_REDIS_ADDR"`
	Password     string        `envconfig:"MERCATO_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERCATO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERCATO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERCATO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERCATO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERCATO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERCATO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"MERCATO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// MediaConfig controls how relative image paths are resolved for the storefront.
type MediaConfig struct {
	PublicOrigin string `envconfig:"MERCATO_MEDIA_PUBLIC_ORIGIN"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"MERCATO_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"MERCATO_METRICS_PATH" default:"/metrics"`
}
