package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDB_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Connect(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitializeDB(ctx, conn))
	require.NoError(t, InitializeDB(ctx, conn))

	var tables []string
	require.NoError(t, conn.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'profile_kv') ORDER BY name`))
	assert.Equal(t, []string{"profile_kv", "users"}, tables)
}

func TestConnect_InMemorySharesOneConnection(t *testing.T) {
	ctx := context.Background()
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, InitializeDB(ctx, conn))

	_, err = conn.ExecContext(ctx, `INSERT INTO profile_kv (profile_id, field, value) VALUES ('p', 'f', 'v')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM profile_kv`))
	assert.Equal(t, 1, count)
}
