// Command server starts the files-manager HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/config"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/limiter"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/migrate"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository/postgres"
	httpserver "github.com/Taiwopeter-babs/alx-files-manager/internal/server/http"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/service"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/session"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// One Redis client per process: sessions and rate limiting
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = rdb.Close() }()

	// One queue client per process
	jobs := queue.NewClient(cfg.RedisAddr)
	defer func() { _ = jobs.Close() }()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("blob store", zap.Error(err))
	}

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileRepo(db)

	sessions := session.NewManager(session.NewStore(rdb))
	lim := limiter.NewRedis(rdb, 15*time.Minute, 5, 15*time.Minute)

	// Services
	appSvc := service.NewAppService(db, sessions, userRepo, fileRepo)
	authSvc := service.NewAuthService(userRepo, sessions, lim, jobs, logger)
	fileSvc := service.NewFileService(fileRepo, blobs, jobs, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpserver.New(appSvc, authSvc, fileSvc, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

// newBlobStore selects the configured blob backend.
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3(ctx, storage.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
	return storage.NewDisk(cfg.StorageRoot), nil
}
