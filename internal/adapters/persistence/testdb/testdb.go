// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"testing"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/config"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database private to t, with reference data seeded.
// The single connection serializes the errgroup queries of the dashboard.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(logger.Default.LogMode(logger.Silent)))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.NewSeeder(db, config.SeedConfig{}).Run(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}
