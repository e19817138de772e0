// Package testutil opens the PostgreSQL database used by repository integration tests.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uasz.sn/utilisateursapi/internal/bootstrap"
	"uasz.sn/utilisateursapi/pkg/database"
)

// SkipIfNoIntegration skips unless INTEGRATION_TEST=true.
func SkipIfNoIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test (set INTEGRATION_TEST=true)")
	}
}

// SetupTestDB migrates the test database and returns a transaction rolled
// back when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	SkipIfNoIntegration(t)

	opts := database.Options{
		Host:     envOrDefault("TEST_DB_HOST", "localhost"),
		Port:     envOrDefault("TEST_DB_PORT", "5433"),
		User:     envOrDefault("TEST_DB_USER", "test"),
		Password: envOrDefault("TEST_DB_PASS", "test"),
		Name:     envOrDefault("TEST_DB_NAME", "utilisateurs_test"),
		SSLMode:  envOrDefault("TEST_DB_SSLMODE", "disable"),
	}

	db, err := gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		_ = database.Close(db)
	})

	return tx
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
