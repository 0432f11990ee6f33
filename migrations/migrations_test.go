package migrations

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrationName = regexp.MustCompile(`^\d{6}_[a-z0-9_]+\.(up|down)\.sql$`)

// TestMigrationsNotEmpty ensures that all migration .sql files are not
// empty. This is a basic sanity check to catch accidental empty files.
func TestMigrationsNotEmpty(t *testing.T) {
	files, err := os.ReadDir(".")
	require.NoError(t, err)

	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		content, err := os.ReadFile(name)
		require.NoError(t, err, "Failed to read migration file: %s", name)
		require.NotEmpty(t, content, "Migration file is empty: %s", name)
	}
}

// TestMigrationFileNames ensures that all migration files follow the
// golang-migrate naming convention "NNNNNN_description.{up,down}.sql".
func TestMigrationFileNames(t *testing.T) {
	files, err := os.ReadDir(".")
	require.NoError(t, err)

	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		assert.Regexp(t, migrationName, name)
	}
}

// TestMigrationsComePaired ensures every up migration has a matching
// down migration and vice versa.
func TestMigrationsComePaired(t *testing.T) {
	files, err := os.ReadDir(".")
	require.NoError(t, err)

	seen := map[string]map[string]bool{}
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		var base, dir string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			base, dir = strings.TrimSuffix(name, ".up.sql"), "up"
		case strings.HasSuffix(name, ".down.sql"):
			base, dir = strings.TrimSuffix(name, ".down.sql"), "down"
		default:
			t.Fatalf("migration %s is neither .up.sql nor .down.sql", name)
		}
		if seen[base] == nil {
			seen[base] = map[string]bool{}
		}
		seen[base][dir] = true
	}

	for base, dirs := range seen {
		assert.True(t, dirs["up"], "%s is missing its up migration", base)
		assert.True(t, dirs["down"], "%s is missing its down migration", base)
	}
}
