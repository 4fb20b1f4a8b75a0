package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/archive"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/calendar"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		// logger pode não existir ainda
		_, _ = os.Stderr.WriteString("salon-scheduler: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// ======================================================
	// BANCO
	// ======================================================
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("salon_scheduler")
		log.Info("metrics enabled", zap.String("path", "/metrics"))
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// CACHE DO CALENDÁRIO
	// ======================================================
	var cache calendar.Cache = calendar.NewMemoryCache()
	if cfg.CalendarCache == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return err
		}
		cache = calendar.NewRedisCache(rdb)
		log.Info("calendar cache on redis", zap.String("addr", cfg.RedisAddr))
	}

	// ======================================================
	// ARQUIVO DE CAIXAS FECHADOS
	// ======================================================
	var archiver *archive.Archiver
	deps := routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: m,
		Audit:   dispatcher,
		Cache:   cache,
	}
	if cfg.ArchiveEnabled {
		client, err := archive.NewS3Client(cfg)
		if err != nil {
			return err
		}
		archiver = archive.New(client, cfg.ArchiveBucket, log, m)
		deps.Archive = archiver
		log.Info("cash session archive enabled", zap.String("bucket", cfg.ArchiveBucket))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := routes.RegisterRoutes(r, deps); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	// ======================================================
	// SHUTDOWN: HTTP, depois auditoria e arquivamentos pendentes
	// ======================================================
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn("audit queue not fully drained", zap.Error(err))
	}
	if archiver != nil {
		archiver.Wait()
	}

	log.Info("server stopped")
	return nil
}
