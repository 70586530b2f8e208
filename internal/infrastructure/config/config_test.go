package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"MARKET_APP_NAME":                os.Getenv("MARKET_APP_NAME"),
		"MARKET_APP_ENV":                 os.Getenv("MARKET_APP_ENV"),
		"MARKET_APP_PORT":                os.Getenv("MARKET_APP_PORT"),
		"MARKET_DATABASE_HOST":           os.Getenv("MARKET_DATABASE_HOST"),
		"MARKET_DATABASE_PORT":           os.Getenv("MARKET_DATABASE_PORT"),
		"MARKET_DATABASE_USER":           os.Getenv("MARKET_DATABASE_USER"),
		"MARKET_DATABASE_PASSWORD":       os.Getenv("MARKET_DATABASE_PASSWORD"),
		"MARKET_DATABASE_DBNAME":         os.Getenv("MARKET_DATABASE_DBNAME"),
		"MARKET_DATABASE_SSLMODE":        os.Getenv("MARKET_DATABASE_SSLMODE"),
		"MARKET_DATABASE_MAX_OPEN_CONNS": os.Getenv("MARKET_DATABASE_MAX_OPEN_CONNS"),
		"MARKET_DATABASE_MAX_IDLE_CONNS": os.Getenv("MARKET_DATABASE_MAX_IDLE_CONNS"),
		"MARKET_JWT_SECRET":              os.Getenv("MARKET_JWT_SECRET"),
		"MARKET_QUEUE_IMPORT_QUEUE":      os.Getenv("MARKET_QUEUE_IMPORT_QUEUE"),
		"MARKET_STORAGE_BACKEND":         os.Getenv("MARKET_STORAGE_BACKEND"),
		"MARKET_STORAGE_BUCKET":          os.Getenv("MARKET_STORAGE_BUCKET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "marketplace-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "marketplace", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "catalog.import", cfg.Queue.ImportQueue)
		assert.Equal(t, 1, cfg.Queue.PrefetchCount)
		assert.Equal(t, "local", cfg.Storage.Backend)
	})

	t.Run("loads values from environment variables with MARKET prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MARKET_APP_NAME", "test-app")
		os.Setenv("MARKET_APP_PORT", "9000")
		os.Setenv("MARKET_DATABASE_HOST", "testdb.local")
		os.Setenv("MARKET_DATABASE_PORT", "5433")
		os.Setenv("MARKET_DATABASE_USER", "testuser")
		os.Setenv("MARKET_DATABASE_PASSWORD", "testpass")
		os.Setenv("MARKET_QUEUE_IMPORT_QUEUE", "imports.test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "imports.test", cfg.Queue.ImportQueue)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("MARKET_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("MARKET_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("MARKET_STORAGE_BACKEND", "ftp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.backend")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"MARKET_APP_ENV":           os.Getenv("MARKET_APP_ENV"),
		"MARKET_JWT_SECRET":        os.Getenv("MARKET_JWT_SECRET"),
		"MARKET_DATABASE_PASSWORD": os.Getenv("MARKET_DATABASE_PASSWORD"),
		"MARKET_DATABASE_SSLMODE":  os.Getenv("MARKET_DATABASE_SSLMODE"),
		"MARKET_STORAGE_BACKEND":   os.Getenv("MARKET_STORAGE_BACKEND"),
		"MARKET_STORAGE_BUCKET":    os.Getenv("MARKET_STORAGE_BUCKET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("MARKET_APP_ENV", "production")
		os.Setenv("MARKET_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("MARKET_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MARKET_DATABASE_SSLMODE", "require")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("MARKET_APP_ENV", "production")
		os.Setenv("MARKET_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MARKET_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("MARKET_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("MARKET_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("MARKET_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires bucket when s3 backend in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("MARKET_STORAGE_BACKEND", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket is required")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
