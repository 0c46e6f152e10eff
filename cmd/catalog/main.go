package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/pkg/kit"
)

func main() {
	os.Exit(run())
}

func run() int {
	service := "catalog"
	dotenvErr := config.LoadDotEnv()
	cfg := config.LoadCatalog()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if dotenvErr != nil {
		log.Warn("load .env failed", zap.Error(dotenvErr))
	}

	ctx := context.Background()
	shutdownTracing := kit.InitTracing(ctx, log, kit.TracingConfig{
		Enabled:  cfg.TracingEnabled,
		Service:  service,
		Endpoint: cfg.OTLPEndpoint,
	})
	defer func() { _ = shutdownTracing(context.Background()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &catalog.Server{
		Catalog: catalog.DefaultCatalog(),
		Delay:   cfg.Delay,
		Log:     log,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		TracingEnabled: cfg.TracingEnabled,
	})

	log.Info("catalog ready",
		zap.Int("products", s.Catalog.Len()),
		zap.Duration("delay", s.Delay),
	)

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return 1
	}
	return 0
}
