package main

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/scene/internal/config"
	"github.com/vango-dev/scene/pkg/middleware"
	"github.com/vango-dev/scene/pkg/runtime"
)

// env is what every command needs once the config is loaded.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	rt       *runtime.Runtime
}

// setup loads the config from dir and builds a runtime with the configured
// middleware. Logs go to logw.
func setup(dir string, logw io.Writer) (*env, error) {
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(logw)

	reg := prometheus.NewRegistry()
	mw := []runtime.Middleware{middleware.Logging(logger)}
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mw = append(mw, middleware.Prometheus(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithSubsystem(cfg.Metrics.Subsystem),
		))
	}
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	rt := runtime.New(
		runtime.WithRootOptions(cfg.RootOptions()),
		runtime.WithLogger(logger),
		runtime.WithMiddleware(mw...),
	)
	return &env{cfg: cfg, logger: logger, registry: reg, rt: rt}, nil
}
