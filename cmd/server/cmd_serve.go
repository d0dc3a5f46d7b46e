package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/docutrack/internal/cache"
	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/database"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/queue"
	"github.com/iliyamo/docutrack/internal/repository"
	"github.com/iliyamo/docutrack/internal/router"
	"github.com/iliyamo/docutrack/internal/service"
)

const shutdownTimeout = 10 * time.Second

// docutrack serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal("migrations failed", "error", err)
		}
	}

	users := repository.NewUserRepo(db)
	certs := repository.NewCertificateRepo(db)
	auth := service.NewAuthService(users, cfg, log)
	if cfg.Admin.Seed {
		if err := auth.SeedAdmin(ctx, cfg.Admin); err != nil {
			log.Fatal("admin seeding failed", "error", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and stats cache disabled", "addr", cfg.Redis.Address())
	} else {
		defer rdb.Close()
	}

	events := service.NewEventPublisher(cfg.Queue)
	certSvc := service.NewCertificateService(certs, events, cache.NewStats(cfg.Stats, rdb, log), log)

	if cfg.Queue.Enabled && cfg.Queue.ConsumerEnabled {
		consumer := queue.NewConsumer(cfg.Queue, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("event consumer stopped", "error", err)
			}
		}()
	}

	e := router.New(router.Deps{Cfg: cfg, Log: log, DB: db, Auth: auth, Certs: certSvc, Redis: rdb})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
