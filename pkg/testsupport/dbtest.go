package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBCounter atomic.Int64

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewIsolatedSQLiteMemoryDB opens a named in-memory database that no other
// test shares.
func NewIsolatedSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:blogtest%d?mode=memory&cache=shared&_foreign_keys=on", memoryDBCounter.Add(1))
	return sql.Open("sqlite3", name)
}

// NewBunDB returns an isolated sqlite-backed bun handle closed on cleanup.
func NewBunDB(t testing.TB) *bun.DB {
	t.Helper()

	sqlDB, err := NewIsolatedSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
