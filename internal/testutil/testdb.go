package testutil

import (
	"testing"

	"project-team-tracker/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	return database.Open(":memory:", "silent")
}

// MustInMemoryDB is NewInMemoryDB for tests; the database is closed on cleanup.
func MustInMemoryDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
