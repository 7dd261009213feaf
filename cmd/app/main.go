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

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(configs.LogLevel, configs.LogFormat)
	if err != nil {
		return err
	}
	zerolog.DefaultContextLogger = &logger

	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	redisClient, err := openRedis(configs.RedisURL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("closing resources")
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("starting jobs: %w", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startWebServer(ctx, app, configs.HTTPPort, logger)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := postgres.Open(configs.DatabaseOptions())
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return gormDB, nil
}

func openRedis(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger zerolog.Logger) error {
	e := app.CreateHTTPServer()
	e.Logger.SetLevel(log.ERROR)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", port).Msg("http server listening")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
