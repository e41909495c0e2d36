package di

import (
	"context"
	"fmt"
	"time"

	"StockCast/internal/domain/repository"
	domsvc "StockCast/internal/domain/service"
	"StockCast/internal/handler/api"
	"StockCast/internal/handler/web"
	icache "StockCast/internal/service/cache"
	"StockCast/internal/services/inference"
	"StockCast/internal/usecase"
	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	"StockCast/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

// ProvideServingClient creates the client for the model-serving runtime.
func ProvideServingClient(cfg *config.Config) *inference.ServingClient {
	return inference.NewServingClient(cfg.Inference.ServingURL, cfg.Inference.Timeout,
		inference.WithAttempts(cfg.Inference.Attempts),
	)
}

// ProvideModelRegistry loads every configured slot. Slots that fail stay
// unavailable; this never returns an error.
func ProvideModelRegistry(
	cfg *config.Config,
	client *inference.ServingClient,
	l *applogger.Logger,
	m repository.Metrics,
) domsvc.ModelRegistry {
	specs := inference.SpecsFromConfig(cfg)
	loader := inference.NewLoader(
		inference.ServingBinder{Client: client, Probe: cfg.Inference.ProbeOnStart},
		inference.WithLoaderLogger(l),
		inference.WithLoaderMetrics(m),
		inference.WithSerialize(cfg.Inference.Serialize),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(specs))*cfg.Inference.Timeout)
	defer cancel()

	reg := loader.Load(ctx, specs)
	names := make([]string, 0, len(specs))
	for _, s := range reg.Available() {
		names = append(names, string(s))
	}
	l.Info("model registry ready", applogger.Strings("available", names))
	return reg
}

// ProvideForecastCache creates the optional forecast cache. A disabled cache
// is returned as a nil interface so the forecaster skips it entirely.
func ProvideForecastCache(cfg *config.Config, l *applogger.Logger) (repository.ForecastCache, func(), error) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		return nil, noop, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rc, err := icache.NewRedisCache(ctx, icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("forecast cache: %w", err)
		}
		l.Info("forecast cache: redis", applogger.String("addr", cfg.Cache.Redis.Addr))
		return rc, func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}, nil
	default:
		l.Info("forecast cache: memory", applogger.Duration("ttl", cfg.Cache.TTL))
		return icache.NewTTLCache(), noop, nil
	}
}

// ProvideForecaster creates the forecast use case.
func ProvideForecaster(
	cfg *config.Config,
	reg domsvc.ModelRegistry,
	m repository.Metrics,
	c repository.ForecastCache,
	l *applogger.Logger,
) *usecase.Forecaster {
	return usecase.NewForecaster(reg,
		usecase.WithMetrics(m),
		usecase.WithCache(c, cfg.Cache.TTL),
		usecase.WithLogger(l),
	)
}

// ProvideForecastHandler creates the JSON API handler.
func ProvideForecastHandler(l *applogger.Logger, f *usecase.Forecaster) *api.ForecastEchoHandler {
	return api.NewForecastEchoHandler(l, f)
}

// ProvideWebHandler creates the browser form handler.
func ProvideWebHandler() (*web.Handler, error) {
	h, err := web.NewHandler()
	if err != nil {
		return nil, fmt.Errorf("web handler: %w", err)
	}
	return h, nil
}

// ProvideHTTPServer creates the Echo server with every route registered.
func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	forecast *api.ForecastEchoHandler,
	page *web.Handler,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(xhttp.Handlers{forecast, page},
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application.
func ProvideApp(l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(l, srv)
}
