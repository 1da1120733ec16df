package repositories_test

import (
	"github.com/myrjola/caseclosed/internal/db"
	"testing"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.DBs {
	t.Helper()

	dbs, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	// Set database to read-only mode.
	// The mode=ro flag doesn't seem to work with :memory: and cache=shared.
	if _, err = dbs.Read.Exec("PRAGMA query_only = TRUE;"); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.ReadWrite.Close(); err != nil {
			t.Fatal(err)
		}
		if err = dbs.Read.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
