package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/benchauth/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", MemoryDSN)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db))
	return db
}

func TestSQLite_SetAndGet(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", `[{"id":"1"}]`))

	v, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, v)
}

func TestSQLite_GetMissing(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSQLite_GetEmptyValueIsPresent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", ""))
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSQLite_SetUpserts(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "old"))
	require.NoError(t, s.Set(ctx, "k", "new"))

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)
}

func TestSQLite_DeleteIsIdempotent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLite_ListAndClear(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)

	require.NoError(t, s.Clear(ctx))
	m, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_Replace(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "stale", "x"))
	require.NoError(t, s.Replace(ctx, map[string]string{"a": "1", "b": "2"}))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestSQLite_ReplaceInsideCallerTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteStore(db).Set(ctx, "stale", "x"))

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteStore(tx).Replace(ctx, map[string]string{"a": "1"})
	})
	require.NoError(t, err)

	m, err := NewSQLiteStore(db).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, m)
}

func TestSQLite_ErrorsAfterClose(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := NewSQLiteStore(db)
	ctx := context.Background()

	_, _, err = s.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get storage[k]")
	assert.ErrorContains(t, s.Set(ctx, "k", "v"), "failed to set storage[k]")
	assert.ErrorContains(t, s.Delete(ctx, "k"), "failed to delete storage[k]")
	assert.ErrorContains(t, s.Clear(ctx), "failed to clear storage")
	_, err = s.List(ctx)
	assert.ErrorContains(t, err, "failed to list storage")
	assert.ErrorContains(t, s.Replace(ctx, nil), "begin tx")
}
