package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyPtr(s string) *Money {
	m := MustMoney(s)
	return &m
}

func TestPurchaseInputValidation(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	valid := PurchaseInput{ProductID: 1, BudgetID: 2, Quantity: 10, CostPrice: MustMoney("5")}

	tests := []struct {
		name    string
		mutate  func(*PurchaseInput)
		wantErr string
	}{
		{name: "valid defaults purchase date", mutate: func(*PurchaseInput) {}},
		{name: "missing product", mutate: func(in *PurchaseInput) { in.ProductID = 0 }, wantErr: "productId and budgetId are required"},
		{name: "missing budget", mutate: func(in *PurchaseInput) { in.BudgetID = 0 }, wantErr: "productId and budgetId are required"},
		{name: "zero quantity", mutate: func(in *PurchaseInput) { in.Quantity = 0 }, wantErr: "quantity must be greater than zero"},
		{name: "zero cost", mutate: func(in *PurchaseInput) { in.CostPrice = MustMoney("0") }, wantErr: "costPrice must be greater than zero"},
		{name: "bad date", mutate: func(in *PurchaseInput) { in.PurchaseDate = "yesterday" }, wantErr: "purchaseDate must be a date"},
		{
			name: "quantity wraps cents",
			mutate: func(in *PurchaseInput) {
				in.Quantity = math.MaxInt64
				in.CostPrice = MustMoney("0.02")
			},
			wantErr: "quantity must not exceed",
		},
		{name: "cost price over cap", mutate: func(in *PurchaseInput) { in.CostPrice = MustMoney("1000000000000.01") }, wantErr: "costPrice must not exceed"},
		{
			name: "total cost over cap",
			mutate: func(in *PurchaseInput) {
				in.Quantity = MaxQuantity
				in.CostPrice = MustMoney("10000")
			},
			wantErr: "purchase cost must not exceed",
		},
		{
			name: "expiry before purchase",
			mutate: func(in *PurchaseInput) {
				in.PurchaseDate = "2024-05-10"
				in.ExpireDate = "2024-05-01"
			},
			wantErr: "expireDate must not precede purchaseDate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			p, err := in.NewPurchase(now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindValidation))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, now, p.PurchaseDate)
			assert.Equal(t, int64(5000), p.Cost().Cents())
		})
	}
}

func TestSaleInputComputesTotal(t *testing.T) {
	s, err := SaleInput{PurchaseID: 1, Quantity: 4, SalePrice: moneyPtr("8")}.NewSale(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3200), s.Total.Cents())

	_, err = SaleInput{PurchaseID: 1, Quantity: 0, SalePrice: moneyPtr("8")}.NewSale(time.Now())
	assert.True(t, IsKind(err, KindValidation))

	_, err = SaleInput{PurchaseID: 1, Quantity: 1}.NewSale(time.Now())
	assert.True(t, IsKind(err, KindValidation))

	_, err = SaleInput{PurchaseID: 1, Quantity: math.MaxInt64, SalePrice: moneyPtr("0.02")}.NewSale(time.Now())
	assert.True(t, IsKind(err, KindValidation))

	_, err = SaleInput{PurchaseID: 1, Quantity: MaxQuantity, SalePrice: moneyPtr("10000")}.NewSale(time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sale total must not exceed")
}

func TestBudgetInput(t *testing.T) {
	b, err := BudgetInput{Name: " Groceries ", Amount: moneyPtr("100")}.NewBudget()
	require.NoError(t, err)
	assert.Equal(t, "Groceries", b.Name)
	assert.Equal(t, int64(10000), b.Amount.Cents())

	_, err = BudgetInput{Name: "x", Amount: moneyPtr("-1")}.NewBudget()
	assert.True(t, IsKind(err, KindValidation))

	require.NoError(t, BudgetInput{Amount: moneyPtr("20")}.Apply(&b))
	assert.Equal(t, "Groceries", b.Name)
	assert.Equal(t, int64(2000), b.Amount.Cents())

	require.NoError(t, BudgetInput{Amount: moneyPtr("0")}.Apply(&b))
	assert.True(t, b.Amount.IsZero())

	assert.True(t, IsKind(BudgetInput{Amount: moneyPtr("-1")}.Apply(&b), KindValidation))
	assert.True(t, IsKind(BudgetInput{Amount: moneyPtr("1000000000001")}.Apply(&b), KindValidation))
	assert.True(t, b.Amount.IsZero())

	_, err = BudgetInput{Name: "x", Amount: moneyPtr("0")}.NewBudget()
	assert.True(t, IsKind(err, KindValidation))
}

func TestProductUpdateRecomputesStatus(t *testing.T) {
	p, err := ProductInput{Name: "Milk", Quantity: 3, Price: MustMoney("1.20"), CategoryID: 1}.NewProduct()
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, p.Status)

	zero := int64(0)
	require.NoError(t, ProductUpdate{Quantity: &zero}.Apply(&p))
	assert.Equal(t, StatusOutOfStock, p.Status)

	empty := "  "
	assert.True(t, IsKind(ProductUpdate{Name: &empty}.Apply(&p), KindValidation))

	tooMany := MaxQuantity + 1
	assert.True(t, IsKind(ProductUpdate{Quantity: &tooMany}.Apply(&p), KindValidation))

	_, err = ProductInput{Name: "Gold", Quantity: 1, Price: MustMoney("1000000000001"), CategoryID: 1}.NewProduct()
	assert.True(t, IsKind(err, KindValidation))
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, KindBusinessRule, KindOf(ErrInsufficientBudget))
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("budget %d not found", 3)))
	assert.Equal(t, KindUnexpected, KindOf(assert.AnError))
	assert.Equal(t, "budget 3 not found", NotFoundf("budget %d not found", 3).Error())
}
