package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"beer-catalog/internal/config"
	"beer-catalog/internal/infra/decoder"
	"beer-catalog/internal/infra/fetcher"
	"beer-catalog/internal/observability/logging"
	"beer-catalog/internal/observability/tracing"
	"beer-catalog/internal/resilience/circuitbreaker"

	catUC "beer-catalog/internal/usecase/catalog"

	hhttp "beer-catalog/internal/handler/http"
	hcatalog "beer-catalog/internal/handler/http/catalog"
	"beer-catalog/internal/handler/http/requestid"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if version != "" {
		cfg.Server.Version = version
	}

	logger := initLogger(cfg)

	shutdownTracing := initTracing()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(logger, cfg, components); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger from configuration and installs it as
// the slog default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.NewLogger(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: os.Stdout,
	})
	slog.SetDefault(logger)
	return logger
}

// initTracing installs a tracer provider so requests carry trace ids for log
// correlation and accept W3C traceparent headers.
func initTracing() func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}

// ServerComponents holds the wired HTTP handler and the stateful pieces the
// server lifecycle needs.
type ServerComponents struct {
	Handler     http.Handler
	Breakers    *circuitbreaker.Group
	RateLimiter *hhttp.RateLimiter
}

func setupServer(logger *slog.Logger, cfg *config.AppConfig) (*ServerComponents, error) {
	target, err := cfg.TargetPrice()
	if err != nil {
		return nil, err
	}

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Timeout = cfg.Fetch.Timeout
	fetchCfg.MaxBodySize = cfg.Fetch.MaxBodySize
	fetchCfg.MaxRedirects = cfg.Fetch.MaxRedirects
	fetchCfg.DenyPrivateIPs = cfg.Fetch.DenyPrivateIPs
	if err := fetchCfg.Validate(); err != nil {
		return nil, err
	}
	if !fetchCfg.DenyPrivateIPs {
		logger.Warn("private address protection disabled for outbound fetches")
	}

	breakers := circuitbreaker.NewGroup(circuitbreaker.CatalogSourceConfig(), circuitbreaker.DefaultMaxKeys)
	source := fetcher.NewHTTPSource(fetchCfg, breakers, logger)
	svc := catUC.NewService(source, decoder.MustNew(), logger)

	var limiter *hhttp.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = hhttp.NewRateLimiter(hhttp.RateLimiterConfig{
			RPS:               cfg.RateLimit.RPS,
			Burst:             cfg.RateLimit.Burst,
			TrustProxyHeaders: cfg.RateLimit.TrustProxy,
		})
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst))
	}

	mux := http.NewServeMux()
	hcatalog.Register(mux, svc, target, logger)
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:     cfg.Server.Version,
		Breakers:    breakers,
		RateLimiter: limiter,
	})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, limiter),
		Breakers:    breakers,
		RateLimiter: limiter,
	}, nil
}

// applyMiddleware wraps the router. The first middleware is the outermost.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler, limiter *hhttp.RateLimiter) http.Handler {
	mws := []hhttp.Middleware{
		requestid.Middleware,
		hhttp.SecurityHeaders,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
	}
	if limiter != nil {
		mws = append(mws, limiter.Limit)
	}
	mws = append(mws, hhttp.Timeout(cfg.Server.RequestTimeout))
	return hhttp.Chain(handler, mws...)
}

func runServer(logger *slog.Logger, cfg *config.AppConfig, components *ServerComponents) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
	return nil
}
