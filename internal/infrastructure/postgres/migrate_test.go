package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/depo?sslmode=disable", pgx5URL("postgres://u:p@db:5432/depo?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/depo", pgx5URL("postgresql://u@db/depo"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}

func TestMigracionesEmbebidasEnPares(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case len(f) > 7 && f[len(f)-7:] == ".up.sql":
			ups++
		case len(f) > 9 && f[len(f)-9:] == ".down.sql":
			downs++
		}
	}
	assert.Equal(t, ups, downs, "cada migración tiene su reversa")
}

func TestPageBounds(t *testing.T) {
	l, o := pageBounds(0, -3)
	assert.Equal(t, 100, l)
	assert.Equal(t, 0, o)

	l, o = pageBounds(20, 40)
	assert.Equal(t, 20, l)
	assert.Equal(t, 40, o)
}
