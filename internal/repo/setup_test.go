package repo_test

import (
	"database/sql"
	"os"
	"testing"

	"github.com/khizana-app/khizana/internal/config"
	"github.com/khizana-app/khizana/internal/db"
)

func openTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "khizana",
		Password: "khizana_pass",
		DBName:   "khizana_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	for _, table := range []string{"pages", "acquisition_jobs", "documents"} {
		if _, err := conn.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("reset table %s: %v", table, err)
		}
	}
	return conn, func() {
		_ = conn.Close()
	}
}
