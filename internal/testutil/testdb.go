package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/paperplan/internal/db"
)

// OpenTestDB opens an in-memory SQLite database with migrations applied and
// closes it when the test ends.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
