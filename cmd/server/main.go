package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/config"
	"github.com/lodthe/docker-tags/internal/discovery"
	"github.com/lodthe/docker-tags/internal/plugin"
	"github.com/lodthe/docker-tags/pkg/dockerhub"
	api "github.com/lodthe/docker-tags/pkg/restapi"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Listen to termination signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Initialize config.
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		zlog.Fatal().Err(err).Msg("config cannot be loaded")
	}

	// Initialize logger.
	zlog.Logger = cfg.Logger()
	logger := zlog.Logger

	// Load the catalog.
	entities, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		zlog.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("catalog cannot be loaded")
	}
	logger.Info().Int("entities", len(entities.All())).Msg("catalog has been loaded")

	// Register the plugin.
	p := plugin.New(plugin.Deps{
		Logger:    logger,
		Discovery: discovery.NewStatic(cfg.Registry.DiscoveryBaseURL),
		Fetcher:   dockerhub.NewHTTPFetcher(cfg.Registry.MaxRPS, &http.Client{Timeout: cfg.Registry.RequestTimeout}),
	})

	// Initialize the REST server.
	router, err := api.NewRouter(api.RouterOpts{
		Logger:              logger,
		Entities:            entities,
		Tables:              p,
		Options:             cfg.Table,
		UpstreamRegistryURL: cfg.Registry.UpstreamURL,
		Timeout:             cfg.API.ServerTimeout,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("router cannot be created")
	}

	srv := &http.Server{
		Addr:              cfg.API.ListeningAddress,
		Handler:           router,
		ReadTimeout:       20 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.API.ServerTimeout + 5*time.Second,
	}
	go func() {
		zlog.Info().Str("address", cfg.API.ListeningAddress).Msg("starting the server")

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server listen failed")
		}
	}()

	// Export Prometheus metrics.
	go func() {
		zlog.Info().Str("address", cfg.PrometheusExportAddress).Msg("starting the prometheus exporter")

		metricSrv := &http.Server{
			Addr:              cfg.PrometheusExportAddress,
			Handler:           http.DefaultServeMux,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		}

		http.DefaultServeMux.Handle("/metrics", promhttp.Handler())
		err := metricSrv.ListenAndServe()
		if err != nil {
			zlog.Error().Err(err).Msg("prometheus exporter failed")
		}
	}()

	<-stop

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdown()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		zlog.Error().Err(err).Msg("server shutdown failed")
	}
}
