package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var errBoom = errors.New("boom")

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS revoked_tokens (id INTEGER PRIMARY KEY, token TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return db
}

func revokedCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM revoked_tokens`).Scan(&n))
	return n
}

func revoke(ctx context.Context, tx DBTX, token string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO revoked_tokens(token) VALUES (?)`, token)
	return err
}

func TestWithTx_Commits(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := revoke(ctx, tx, "a"); err != nil {
			return err
		}
		return revoke(ctx, tx, "b")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, revokedCount(t, db))
}

func TestWithTx_RollsBackWholeUnit(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, revoke(ctx, tx, "a"))
		return revoke(ctx, tx, "a")
	})
	require.Error(t, err, "second insert violates the unique token")
	assert.Equal(t, 0, revokedCount(t, db), "first insert must be rolled back too")
}

func TestWithTx_ReturnsFnErrorUnwrapped(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, revoke(ctx, tx, "a"))
		return errBoom
	})
	assert.Same(t, errBoom, err)
	assert.Equal(t, 0, revokedCount(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		r := recover()
		require.Equal(t, "kaput", r)
		assert.Equal(t, 0, revokedCount(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, revoke(ctx, tx, "a"))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin tx error")
	assert.False(t, called)
}

func TestSQLTransactor(t *testing.T) {
	db := setupDB(t)
	var tr Transactor = NewTransactor(db, nil)

	require.NoError(t, tr.WithTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		return revoke(ctx, tx, "a")
	}))
	require.ErrorIs(t, tr.WithTx(context.Background(), func(context.Context, DBTX) error {
		return errBoom
	}), errBoom)
	assert.Equal(t, 1, revokedCount(t, db))
}
