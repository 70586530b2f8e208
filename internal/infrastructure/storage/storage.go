// Package storage keeps uploaded price list files until the import
// worker picks them up.
package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// FileStorage stores and retrieves price list files by key. The key is
// what travels through the job queue as the file reference.
type FileStorage interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewFromConfig builds the backend selected in configuration.
func NewFromConfig(cfg config.StorageConfig, logger *zap.Logger) (FileStorage, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Storage(cfg, logger)
	case "local":
		return NewLocalStorage(cfg.LocalDir, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// PriceListKey builds a collision-free storage key for an upload.
func PriceListKey(userID uuid.UUID, fileName string) string {
	ext := path.Ext(fileName)
	if ext == "" {
		ext = ".dat"
	}
	return fmt.Sprintf("pricelists/%s/%d%s", userID, time.Now().UnixNano(), ext)
}
