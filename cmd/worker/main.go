package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/application/importer"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/queue"
	"github.com/marketplace/backend/internal/infrastructure/storage"
)

// The worker consumes price list import jobs queued by the API. Each
// job is one uploaded file: load it from storage, replace the
// supplier's catalog inside a transaction, ack.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting import worker",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("queue", cfg.Queue.ImportQueue),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	fileStorage, err := storage.NewFromConfig(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	consumer, err := queue.NewConsumer(cfg.Queue, log)
	if err != nil {
		log.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error("Error closing broker connection", zap.Error(err))
		}
	}()

	importService := importer.NewService(persistence.NewGormImportScope(db.DB), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = consumer.Run(ctx, func(ctx context.Context, job queue.ImportJob) error {
		jobLog := log.With(
			zap.String("user_id", job.UserID.String()),
			zap.String("file_ref", job.FileRef),
		)
		jobLog.Info("Processing price list", zap.String("file_name", job.FileName))

		data, err := fileStorage.Load(ctx, job.FileRef)
		if err != nil {
			return err
		}

		jobCtx := ctx
		if cfg.Import.JobTimeout > 0 {
			var cancel context.CancelFunc
			jobCtx, cancel = context.WithTimeout(ctx, cfg.Import.JobTimeout)
			defer cancel()
		}

		result, err := importService.Import(jobCtx, job.UserID, data, job.FileRef)
		if err != nil {
			return err
		}

		jobLog.Info("Price list imported",
			zap.String("shop", result.ShopName),
			zap.Int("imported", result.Imported),
			zap.Int("skipped", len(result.Skipped)),
		)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Consumer stopped", zap.Error(err))
	}

	log.Info("Worker exited gracefully")
}
