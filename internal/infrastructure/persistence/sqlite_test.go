package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The GORM models are portable enough that the repositories behave the
// same as against Postgres for everything these tests exercise.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&identity.ConfirmToken{},
		&identity.Contact{},
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductInfo{},
		&catalog.Parameter{},
		&catalog.ProductParameter{},
		&ordering.Order{},
		&ordering.OrderItem{},
	)
	require.NoError(t, err)

	return db
}
