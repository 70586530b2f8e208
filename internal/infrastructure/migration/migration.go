package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies versioned SQL migrations with golang-migrate.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New wraps an open Postgres connection and a directory of
// NNNN_name.up.sql / NNNN_name.down.sql file pairs.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migration source %s: %w", dir, err)
	}
	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return mg.logVersion("Migrations applied")
}

// Down rolls every migration back.
func (mg *Migrator) Down() error {
	err := mg.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations; negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	err := mg.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %d steps: %w", n, err)
	}
	return mg.logVersion("Migration steps applied")
}

// Version reports the current schema version. A fresh database reports
// version zero.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running anything. This
// exists to recover a dirty state after a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}

func (mg *Migrator) logVersion(msg string) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Create writes an empty up/down migration pair into dir and returns
// the base name. Versions are timestamps, so files from parallel
// branches sort into a sane order.
func Create(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	base := now.Format("20060102150405") + "_" + slugify(name)
	header := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n", slugify(name), now.Format(time.RFC3339))

	upPath := filepath.Join(dir, base+".up.sql")
	if err := os.WriteFile(upPath, []byte(header+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", upPath, err)
	}
	downPath := filepath.Join(dir, base+".down.sql")
	if err := os.WriteFile(downPath, []byte(header+"\n"), 0o644); err != nil {
		os.Remove(upPath)
		return "", fmt.Errorf("write %s: %w", downPath, err)
	}
	return base, nil
}

// List returns the base names of the migration pairs found in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}

// slugify lowercases the name and squashes everything that is not safe
// in a file name to single underscores.
func slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}
