package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/model"
)

func TestOrdersCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dbPath := filepath.Join(home, "orders.db")
	t.Setenv("STOREFRONT_DATABASE_PATH", dbPath)
	t.Setenv("STOREFRONT_CONFIG", "")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"orders"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "No orders yet.")

	db, err := database.OpenAndMigrate(dbPath)
	require.NoError(t, err)
	err = repository.NewReceiptRepo(db).Record(context.Background(),
		model.Order{Payment: model.PaymentCard, Items: []string{"p1", "p3"}},
		model.OrderResult{ID: "o-77", Total: decimal.NewFromInt(3950)})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out.Reset()
	root = NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"orders", "-n", "5"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "o-77")
	require.Contains(t, out.String(), "p1,p3")
	require.Contains(t, out.String(), "3950")
}

func TestLoadProductsDefault(t *testing.T) {
	products, err := loadProducts("")
	require.NoError(t, err)
	require.NotEmpty(t, products)

	_, err = loadProducts(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
