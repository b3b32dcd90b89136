// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/cucumber/service/internal/cache"
	"github.com/jason-s-yu/cucumber/service/internal/config"
	"github.com/jason-s-yu/cucumber/service/internal/database"
	"github.com/jason-s-yu/cucumber/service/internal/game"
	"github.com/jason-s-yu/cucumber/service/internal/handlers"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store cache.Store
		bus   pubsub.Bus
	)
	switch cfg.Backend {
	case config.BackendRedis:
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("redis unavailable")
		}
		defer rdb.Close()
		store, bus = cache.NewRedisStore(rdb), pubsub.NewRedisBus(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("using redis backend")
	default:
		store, bus = cache.NewMemoryStore(), pubsub.NewMemoryBus()
		log.Info("using in-memory backend")
	}

	opts := game.Options{
		LockTTL:      cfg.LockTTL,
		LockAttempts: cfg.LockAttempts,
		LockBackoff:  cfg.LockBackoff,
		OpTTL:        cfg.OpTTL,
		BotPlayouts:  cfg.BotPlayouts,
	}
	if cfg.DatabaseURL != "" {
		archive, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("postgres unavailable")
		}
		defer archive.Close()
		opts.Archive = archive
		log.Info("match archive enabled")
	}

	coord := game.NewCoordinator(store, bus, opts)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.New(coord, bus, cfg.AllowedOrigins).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
