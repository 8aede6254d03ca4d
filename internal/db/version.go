package db

import (
	"github.com/kindredgraph/kindred/internal/db/migrations"
)

// SchemaVersion returns the number of embedded SQL migration files, which is
// the schema version the binary expects. The readiness probe compares it with
// the database.
func SchemaVersion() int {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return 0
	}

	count := 0

	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}

	return count
}
