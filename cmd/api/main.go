package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventgallery/event-gallery-service/internal/config"
	"github.com/eventgallery/event-gallery-service/internal/httpserver"
	"github.com/eventgallery/event-gallery-service/internal/lib/logger/sl"
	"github.com/eventgallery/event-gallery-service/internal/metrics"
	"github.com/eventgallery/event-gallery-service/internal/store"
)

const shutdownTimeout = 10 * time.Second

// main loads config, connects the store and then serves HTTP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)
	log.Info("starting service", slog.String("env", cfg.Env), slog.String("store", cfg.StoreDriver))

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// The store is connected once before serving; failure here is fatal.
	backend, err := openBackend(cfg)
	if err != nil {
		log.Error("failed to connect to document store", sl.Err(err))
		os.Exit(1)
	}
	log.Info("connected to document store")

	m := metrics.New()

	var st store.EventStore = backend
	var redisCache *store.RedisCache
	if cfg.Cache.Enabled {
		redisCache, err = store.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			// The cache is optional; serve straight from the store.
			log.Warn("redis unavailable, cache disabled", slog.String("addr", cfg.Cache.RedisAddr), sl.Err(err))
		} else {
			st = store.NewCachedStore(backend, redisCache, cfg.Cache.TTL, log, m)
			log.Info("event cache enabled", slog.Duration("ttl", cfg.Cache.TTL))
		}
	}

	srv := httpserver.NewServer(cfg.Addr(), httpserver.NewRouter(st, log, m))

	go func() {
		log.Info("server started", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", sl.Err(err))
			os.Exit(1)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGTERM, syscall.SIGINT)
	sign := <-stopChan
	log.Info("stopping service", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to shut down http server", sl.Err(err))
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := backend.Close(ctx); err != nil {
		log.Error("failed to close document store", sl.Err(err))
	}
	log.Info("service stopped")
}

func openBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(cfg.Postgres.DBURL)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Ensure the table exists so an empty database is enough to start.
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close(ctx)
			return nil, err
		}
		return pg, nil
	default:
		return store.NewMongoStore(cfg.Mongo.URL, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	}
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case config.EnvLocal:
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return logger
}
