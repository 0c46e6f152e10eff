package main

import (
	"context"
	"flag"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/config"
	"Storefront/internal/viewer"
	"Storefront/pkg/kit"
)

func main() {
	once := flag.Bool("once", false, "fetch the catalog once, print it and exit")
	flag.Parse()

	os.Exit(run(*once))
}

// run returns the exit code once every deferred cleanup has run.
func run(once bool) int {
	service := "viewer"
	dotenvErr := config.LoadDotEnv()
	cfg := config.LoadViewer()

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

	client := viewer.NewCatalogClient(cfg.CatalogURL, cfg.FetchTimeout)
	fetchMetrics := viewer.NewFetchMetrics(reg)
	newViewer := func() *viewer.Viewer { return viewer.New(client, log, fetchMetrics) }

	if once {
		return viewer.RunOnce(ctx, newViewer(), os.Stdout)
	}

	sess := viewer.NewSession(ctx, newViewer)
	defer sess.Close()

	h := viewer.NewHandler(sess, viewer.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		TracingEnabled: cfg.TracingEnabled,
		CatalogURL:     cfg.CatalogURL,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return 1
	}
	return 0
}
