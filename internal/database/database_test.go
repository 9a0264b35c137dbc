package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMigrations = []Migration{
	{Version: 1, Name: "init", SQL: `CREATE TABLE a (id INTEGER PRIMARY KEY); CREATE INDEX idx_a ON a(id)`},
	{Version: 2, Name: "add b", SQL: `CREATE TABLE b (id INTEGER PRIMARY KEY)`},
}

func TestMigrate_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", 0)
	require.NoError(t, err)
	defer db.Close()

	v, err := Migrate(ctx, db, testMigrations[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Migrate(ctx, db, testMigrations)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// re-running is a no-op
	v, err = Migrate(ctx, db, testMigrations)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMigrate_FailedStepRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", 0)
	require.NoError(t, err)
	defer db.Close()

	bad := []Migration{{Version: 1, Name: "broken", SQL: `CREATE TABLE c (id INTEGER); CREATE TABLE c (id INTEGER)`}}
	v, err := Migrate(ctx, db, bad)
	require.Error(t, err)
	assert.Zero(t, v)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'c'`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eclesiar.db")
	db, err := Open(context.Background(), path, 0)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, path)
}
