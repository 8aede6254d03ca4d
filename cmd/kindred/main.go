// Command kindred serves the relationship graph API: family views, path
// finding and partner search over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kindredgraph/kindred/internal/api"
	"github.com/kindredgraph/kindred/internal/cache"
	"github.com/kindredgraph/kindred/internal/config"
	"github.com/kindredgraph/kindred/internal/db"
	"github.com/kindredgraph/kindred/internal/db/migrations"
	"github.com/kindredgraph/kindred/internal/dbpool"
	"github.com/kindredgraph/kindred/internal/service"
	"github.com/kindredgraph/kindred/internal/store"
	"github.com/kindredgraph/kindred/internal/ws"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()

	if err := run(log); err != nil {
		log.WithError(err).Fatal("kindred exited")
	}
}

func newLogger(log *logrus.Logger, cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	return nil
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := newLogger(log, cfg); err != nil {
		return err
	}

	log.WithField("version", config.Version).Info("starting kindred")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), int32(cfg.DBMaxConns)) //nolint:gosec // bounded by config validation.
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	snapshots, err := cache.New(ctx, cache.Options{
		RedisURL: cfg.RedisURL.Value(),
		Size:     cfg.SnapshotCacheSize,
		TTL:      cfg.SnapshotCacheTTL,
		Prefix:   "kindred:",
	}, log)
	if err != nil {
		return fmt.Errorf("snapshot cache: %w", err)
	}
	defer snapshots.Close() //nolint:errcheck // best-effort on shutdown

	base := store.Base{Pool: pool, Log: log}
	loader := service.NewLoader(store.NewRelationshipStore(base), snapshots, log)

	family := service.NewFamilyService(loader, cfg.Layout, log)
	path := service.NewPathService(loader, cfg.Layout, log)
	match := service.NewMatchService(loader, store.NewLookupStore(base), log)

	hub := ws.NewHub(log)

	if err := db.NewNotifyBridge(log, pool, loader, hub).Start(ctx); err != nil {
		return err
	}

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:             log,
		Pool:            pool,
		Hub:             hub,
		Family:          family,
		Path:            path,
		Match:           match,
		CORSOrigins:     cfg.CORSOrigins,
		Version:         config.Version,
		DefaultMaxDepth: cfg.DefaultMaxDepth,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
	})

	apiSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)

		return nil
	})

	g.Go(func() error { return serve(log, "api", apiSrv) })
	g.Go(func() error { return serve(log, "metrics", metricsSrv) })

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()

		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func serve(log *logrus.Logger, name string, srv *http.Server) error {
	log.WithFields(logrus.Fields{"server": name, "addr": srv.Addr}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}

	return nil
}
