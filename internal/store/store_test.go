package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"inventory/m/domain"
	"inventory/m/internal/database"
	"inventory/m/internal/migrations"
)

// createTestStorage returns a store over a freshly migrated SQLite file.
func createTestStorage(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "inventory.db")
	require.NoError(t, migrations.Run("sqlite", dsn))

	db, err := database.Connect("sqlite", dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

type fixture struct {
	store    *Store
	category domain.Category
	product  domain.Product
	budget   domain.Budget
}

func newFixture(t *testing.T, budget string) fixture {
	t.Helper()
	ctx := context.Background()
	s := createTestStorage(t)

	cat, err := s.CreateCategory(ctx, "Produce")
	require.NoError(t, err)
	prod, err := s.CreateProduct(ctx, domain.Product{
		Name:       "Apples",
		Quantity:   10,
		Price:      domain.MustMoney("9.99"),
		CategoryID: cat.ID,
	})
	require.NoError(t, err)
	b, err := s.CreateBudget(ctx, domain.Budget{Name: "Groceries", Amount: domain.MustMoney(budget)})
	require.NoError(t, err)
	return fixture{store: s, category: cat, product: prod, budget: b}
}

func (f fixture) purchase(t *testing.T, qty int64, cost string) domain.Purchase {
	t.Helper()
	p, err := f.store.CreatePurchase(context.Background(), domain.Purchase{
		ProductID:    f.product.ID,
		BudgetID:     f.budget.ID,
		Quantity:     qty,
		CostPrice:    domain.MustMoney(cost),
		PurchaseDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return p
}

func sale(purchaseID, qty int64, price string, at time.Time) domain.Sale {
	p := domain.MustMoney(price)
	return domain.Sale{PurchaseID: purchaseID, Quantity: qty, SalePrice: p, SaleDate: at, Total: p.Times(qty)}
}

func requireMoney(t *testing.T, want string, got domain.Money) {
	t.Helper()
	require.Truef(t, domain.MustMoney(want).Equal(got.Decimal), "want %s, got %s", want, got)
}
