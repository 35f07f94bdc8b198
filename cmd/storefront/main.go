package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarquez-dev/mercato-storefront/api/routes"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/media"
	"github.com/dmarquez-dev/mercato-storefront/internal/orders"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/internal/vendor"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/metrics"
	"github.com/dmarquez-dev/mercato-storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)

	upstreamClient, err := upstream.NewClient(cfg.Upstream, logg, upstreamMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(redisClient, redis.IsNil, cfg.Session, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	carts, err := cart.NewRegistry(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart registry", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	vendorSvc, err := vendor.NewService(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	var resolver *media.Resolver
	mediaOrigin := cfg.Media.PublicOrigin
	if mediaOrigin == "" {
		mediaOrigin = cfg.Upstream.BaseURL
	}
	resolver, err = media.NewResolver(mediaOrigin, cfg.Upstream.UploadBasePath)
	if err != nil {
		logg.Error(context.Background(), "failed to create media resolver", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Redis:          redisClient,
		Upstream:       upstreamClient,
		Sessions:       sessions,
		Carts:          carts,
		Orders:         ordersSvc,
		Vendor:         vendorSvc,
		Media:          resolver,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		os.Exit(1)
	}
}
