// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"testing"

	"fulfillment/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a private, fully migrated database that is closed when t ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.Options{Driver: postgres.DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
