package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/neuromate?sslmode=disable", migrationURL("postgres://u:p@localhost:5432/neuromate?sslmode=disable"))
	require.Equal(t, "pgx5://db/neuromate", migrationURL("postgresql://db/neuromate"))
	require.Equal(t, "pgx5://db/neuromate", migrationURL("pgx5://db/neuromate"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	require.Positive(t, ups)
	require.Equal(t, ups, downs)
}
