package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateFreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orders.db")
	db, err := OpenAndMigrate(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM receipts`).Scan(&n))
	require.Zero(t, n)
}

func TestRunMigrationsTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO receipts(id, order_id, payment, email, phone, address, total, created_at)
			VALUES ('r1', 'o1', 'card', '', '', '', '1', ?)`, Now()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM receipts`).Scan(&n))
	require.Zero(t, n)
}
