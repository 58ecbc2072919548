// Package testdb opens an isolated in-memory sqlite datastore with the full
// schema migrated, for tests that need real constraint behavior.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/pro-master/backend/internal/db"
)

// New returns a fresh database. Each call gets its own named memory
// database so parallel tests never share rows.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	gdb, err := gorm.Open(sqlite.Open(dsn), dbpkg.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// sqlite serializes writers; a single connection keeps concurrent tests
	// from failing with "database is locked" and keeps the memory db alive.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}
