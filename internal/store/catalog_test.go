package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/m/domain"
)

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	c, err := s.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)

	_, err = s.CreateCategory(ctx, "Dairy")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	other, err := s.CreateCategory(ctx, "Bakery")
	require.NoError(t, err)
	_, err = s.UpdateCategory(ctx, other.ID, "Dairy")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	renamed, err := s.UpdateCategory(ctx, c.ID, "Dairy & Eggs")
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", renamed.Name)

	_, err = s.CreateProduct(ctx, domain.Product{Name: "Milk", Quantity: 3, Price: domain.MustMoney("1.20"), CategoryID: c.ID})
	require.NoError(t, err)

	got, err := s.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Milk", got.Products[0].Name)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Len(t, cats[0].Products, 1)
	assert.Empty(t, cats[1].Products)

	assert.Equal(t, domain.KindConflict, domain.KindOf(s.DeleteCategory(ctx, c.ID)))
	require.NoError(t, s.DeleteCategory(ctx, other.ID))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(s.DeleteCategory(ctx, other.ID)))
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "100")

	assert.Equal(t, "Produce", f.product.CategoryName)
	assert.Equal(t, domain.StatusInStock, f.product.Status)
	requireMoney(t, "9.99", f.product.Price)

	_, err := f.store.CreateProduct(ctx, domain.Product{Name: "Pears", Price: domain.MustMoney("1"), CategoryID: 999})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	zero := int64(0)
	p, err := f.store.UpdateProduct(ctx, f.product.ID, domain.ProductUpdate{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, p.Status)

	missing := int64(999)
	_, err = f.store.UpdateProduct(ctx, f.product.ID, domain.ProductUpdate{CategoryID: &missing})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	f.purchase(t, 1, "1")
	assert.Equal(t, domain.KindConflict, domain.KindOf(f.store.DeleteProduct(ctx, f.product.ID)))
}

func TestBudgetLifecycle(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	first, err := s.CreateBudget(ctx, domain.Budget{Name: "Q1", Amount: domain.MustMoney("10")})
	require.NoError(t, err)
	second, err := s.CreateBudget(ctx, domain.Budget{Name: "Q2", Amount: domain.MustMoney("20")})
	require.NoError(t, err)

	budgets, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, second.ID, budgets[0].ID)

	amount := domain.MustMoney("15.25")
	b, err := s.UpdateBudget(ctx, first.ID, domain.BudgetInput{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "Q1", b.Name)
	requireMoney(t, "15.25", b.Amount)

	zero := domain.MustMoney("0")
	b, err = s.UpdateBudget(ctx, first.ID, domain.BudgetInput{Amount: &zero})
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())

	require.NoError(t, s.DeleteBudget(ctx, first.ID))
	_, err = s.GetBudget(ctx, first.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestImportCatalog(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)
	_, err := s.CreateCategory(ctx, "Snacks")
	require.NoError(t, err)

	items := []CatalogItem{
		{Category: "Snacks", Product: domain.Product{Name: "Chips", Quantity: 5, Price: domain.MustMoney("2.5")}},
		{Category: "Drinks", Product: domain.Product{Name: "Water", Quantity: 0, Price: domain.MustMoney("1")}},
		{Category: "Drinks", Product: domain.Product{Name: "Juice", Quantity: 2, Price: domain.MustMoney("3")}},
	}
	n, err := s.ImportCatalog(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.ImportCatalog(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Len(t, cats[0].Products, 1)
	assert.Len(t, cats[1].Products, 2)
	assert.Equal(t, domain.StatusOutOfStock, cats[1].Products[0].Status)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	u, err := s.CreateUser(ctx, domain.User{Username: "ana", Email: "ana@example.com", Password: "hash"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = s.CreateUser(ctx, domain.User{Username: "ana2", Email: "ana@example.com", Password: "hash"})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	require.NoError(t, s.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err := s.UserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
