package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var _ FileStorage = (*LocalStorage)(nil)

// LocalStorage keeps price list files under a directory on disk. It is
// the development backend; production setups use S3.
type LocalStorage struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(dir string, logger *zap.Logger) (*LocalStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{dir: dir, logger: logger}, nil
}

// path maps a key to a file under the base directory, refusing keys
// that escape it.
func (s *LocalStorage) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

// Save writes the file under the given key.
func (s *LocalStorage) Save(_ context.Context, key string, data []byte) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Load reads the file stored under the given key.
func (s *LocalStorage) Load(_ context.Context, key string) ([]byte, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the file stored under the given key.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
