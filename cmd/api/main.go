// @title PetClinic API
// @version 1.0
// @description Endpoints JSON de la clínica (vets y health). Las pantallas de owners, pets y visits son HTML.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	pg "petclinic/internal/adapters/storage/postgres"
	rdb "petclinic/internal/adapters/storage/redis"
	"petclinic/internal/config"
	"petclinic/internal/platform/logger"
	"petclinic/internal/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := openDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = rdb.Connect(ctx, rdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	h, err := router.NewRouter(router.Options{
		DB:           db,
		Redis:        redisClient,
		Logger:       log,
		VetsCacheTTL: cfg.Redis.VetsCacheTTL,
		FlashTTL:     cfg.Redis.FlashTTL,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openDB devuelve nil sin DB_DSN: la app corre con repositorios en memoria.
func openDB(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*sql.DB, error) {
	if cfg.DSN == "" {
		log.Info().Msg("DB_DSN not set, using in-memory repositories")
		return nil, nil
	}

	db, err := pg.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if cfg.Seed {
		if err := pg.Seed(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	log.Info().Bool("migrate", cfg.Migrate).Bool("seed", cfg.Seed).Msg("postgres connected")
	return db, nil
}
