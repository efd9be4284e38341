package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/model"
)

func newTestRepo(t *testing.T) *ReceiptRepo {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReceiptRepo(db)
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	order := model.Order{
		Payment: model.PaymentCash,
		Email:   "me@shop.io",
		Phone:   "89123456789",
		Address: "Main st 1",
		Items:   []string{"b", "a"},
		Total:   decimal.NewFromInt(300),
	}
	require.NoError(t, repo.Record(ctx, order, model.OrderResult{ID: "o-1", Total: decimal.NewFromInt(300)}))
	require.NoError(t, repo.Record(ctx, order, model.OrderResult{ID: "o-2", Total: decimal.NewFromInt(300)}))

	got, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "o-2", got[0].OrderID)
	require.Equal(t, []string{"b", "a"}, got[0].Items)
	require.Equal(t, "cash", got[0].Payment)
	require.Equal(t, "300", got[0].Total)
	require.False(t, got[0].CreatedAt.IsZero())

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestDuplicateOrderRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	res := model.OrderResult{ID: "o-1", Total: decimal.NewFromInt(1)}
	order := model.Order{Payment: model.PaymentCard, Items: []string{"a"}}

	require.NoError(t, repo.Record(ctx, order, res))
	require.Error(t, repo.Record(ctx, order, res))

	var items int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipt_items`).Scan(&items))
	require.Equal(t, 1, items)
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	require.NoError(t, database.RunMigrations(path))
	require.NoError(t, database.RunMigrations(path))
}
