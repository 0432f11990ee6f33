//go:build sqltest
// +build sqltest

package dbwriter

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-txdb"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func init() {
	// Each test runs inside its own transaction and is rolled back on
	// close, so the schema database stays clean between tests.
	txdb.Register("txdb", "postgres", "user=test password=test dbname=test host=/var/run/postgresql sslmode=disable")
}

// TestMigrations applies every migration file against a transactional
// database to catch SQL syntax and schema errors.
func TestMigrations(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".sql" || !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}
		t.Run(file.Name(), func(t *testing.T) {
			db, err := sql.Open("txdb", file.Name())
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer db.Close()

			content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
			if err != nil {
				t.Fatalf("failed to read migration file: %v", err)
			}

			if _, err := db.Exec(string(content)); err != nil {
				t.Fatalf("failed to apply migration %s: %v", file.Name(), err)
			}
		})
	}
}
