package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openMigrationDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateUpCreatesKVTable(t *testing.T) {
	db := openMigrationDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('k', 'v')`); err != nil {
		t.Fatalf("insert into kv: %v", err)
	}
}

func TestMigrateUpTwiceIsIdempotent(t *testing.T) {
	db := openMigrationDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up: %v", err)
	}
}

func TestMigrateDownDropsKVTable(t *testing.T) {
	db := openMigrationDB(t)
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('k', 'v')`); err == nil {
		t.Fatal("expected insert to fail once the schema is reverted")
	}
}
