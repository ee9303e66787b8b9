package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/xxxsen/adboard/internal/config"
	"github.com/xxxsen/adboard/internal/db"
)

// OpenTestDB returns a migrated store. It uses a throwaway sqlite file unless
// TEST_POSTGRES_DSN points at a postgres database, which is truncated first.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "adboard_test.db"),
	}
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		cfg = config.DatabaseConfig{Driver: config.DriverPostgres, DSN: dsn}
	}
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if cfg.Driver == config.DriverPostgres {
		if _, err := conn.Exec("TRUNCATE ads, users RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
