// Command worker consumes thumbnail and welcome jobs from the queue.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/config"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository/postgres"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/worker"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting worker",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.Int("concurrency", cfg.WorkerConcurrency),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("blob store", zap.Error(err))
	}

	h := worker.NewHandler(postgres.NewFileRepo(db), postgres.NewUserRepo(db), blobs, logger)

	mux := asynq.NewServeMux()
	h.Register(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{Concurrency: cfg.WorkerConcurrency},
	)
	// Run installs its own signal handling and blocks until shutdown.
	if err := srv.Run(mux); err != nil {
		logger.Fatal("worker run", zap.Error(err))
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
