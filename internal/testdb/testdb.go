// Package testdb provides an in-memory database for unit tests. Integration
// tests that need real Postgres live in internal/integration.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/savora-ai/savora/backend/internal/models"
)

// New opens a fresh in-memory database migrated to the current schema.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Document{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
