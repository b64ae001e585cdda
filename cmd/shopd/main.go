package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/config"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
	httpx "github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/http"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/logger"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/metrics"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env, "shopd")

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	caps, err := db.DetectCapabilities(ctx, pool)
	if err != nil {
		log.Error("schema capability check failed", "err", err)
		return
	}
	log.Info("schema capabilities",
		"purchases", caps.Purchases, "sales", caps.Sales, "offerings", caps.ProductOfferings)
	log.Info("unit graph config", "mirror_subsequent_edges", cfg.Units.MirrorSubsequentEdges)

	metrics.Register(prometheus.DefaultRegisterer)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool.Ping)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
