package domain

import "time"

// Purchase is a stock lot bought against a budget. Quantity is what remains
// sellable.
type Purchase struct {
	ID           int64      `db:"id" json:"id"`
	ProductID    int64      `db:"product_id" json:"productId"`
	ProductName  string     `db:"product_name" json:"productName,omitempty"`
	BudgetID     int64      `db:"budget_id" json:"budgetId"`
	Quantity     int64      `db:"quantity" json:"quantity"`
	CostPrice    Money      `db:"cost_price_cents" json:"costPrice"`
	PurchaseDate time.Time  `db:"purchase_date" json:"purchaseDate"`
	ExpireDate   *time.Time `db:"expire_date" json:"expireDate,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Cost is what the purchase charges its budget.
func (p Purchase) Cost() Money {
	return p.CostPrice.Times(p.Quantity)
}

type PurchaseInput struct {
	ProductID    int64  `json:"productId"`
	BudgetID     int64  `json:"budgetId"`
	Quantity     int64  `json:"quantity"`
	CostPrice    Money  `json:"costPrice"`
	PurchaseDate string `json:"purchaseDate"`
	ExpireDate   string `json:"expireDate"`
}

// NewPurchase validates in. PurchaseDate defaults to now.
func (in PurchaseInput) NewPurchase(now time.Time) (Purchase, error) {
	p := Purchase{
		ProductID: in.ProductID,
		BudgetID:  in.BudgetID,
		Quantity:  in.Quantity,
		CostPrice: NewMoney(in.CostPrice.Decimal),
	}
	if p.ProductID <= 0 || p.BudgetID <= 0 {
		return p, Validationf("productId and budgetId are required")
	}
	if p.Quantity <= 0 {
		return p, Validationf("quantity must be greater than zero")
	}
	if !p.CostPrice.IsPositive() {
		return p, Validationf("costPrice must be greater than zero")
	}
	if err := checkQuantity("quantity", p.Quantity); err != nil {
		return p, err
	}
	if err := checkAmount("costPrice", p.CostPrice); err != nil {
		return p, err
	}
	if err := checkAmount("purchase cost", p.Cost()); err != nil {
		return p, err
	}
	bought, err := ParseDate("purchaseDate", in.PurchaseDate)
	if err != nil {
		return p, err
	}
	if bought == nil {
		t := now.UTC()
		bought = &t
	}
	p.PurchaseDate = *bought
	if p.ExpireDate, err = ParseDate("expireDate", in.ExpireDate); err != nil {
		return p, err
	}
	return p, checkExpiry(p)
}

// PurchaseUpdate edits a purchase. It never touches the budget balance.
type PurchaseUpdate struct {
	Quantity     *int64  `json:"quantity"`
	CostPrice    *Money  `json:"costPrice"`
	PurchaseDate *string `json:"purchaseDate"`
	ExpireDate   *string `json:"expireDate"`
}

// Apply validates u against p and writes the changes into p.
func (u PurchaseUpdate) Apply(p *Purchase) error {
	if u.Quantity != nil {
		if *u.Quantity < 0 {
			return Validationf("quantity must not be negative")
		}
		if err := checkQuantity("quantity", *u.Quantity); err != nil {
			return err
		}
		p.Quantity = *u.Quantity
	}
	if u.CostPrice != nil {
		if !u.CostPrice.IsPositive() {
			return Validationf("costPrice must be greater than zero")
		}
		if err := checkAmount("costPrice", *u.CostPrice); err != nil {
			return err
		}
		p.CostPrice = NewMoney(u.CostPrice.Decimal)
	}
	if u.PurchaseDate != nil {
		bought, err := ParseDate("purchaseDate", *u.PurchaseDate)
		if err != nil {
			return err
		}
		if bought == nil {
			return Validationf("purchaseDate must not be empty")
		}
		p.PurchaseDate = *bought
	}
	if u.ExpireDate != nil {
		exp, err := ParseDate("expireDate", *u.ExpireDate)
		if err != nil {
			return err
		}
		p.ExpireDate = exp
	}
	return checkExpiry(*p)
}

func checkExpiry(p Purchase) error {
	if p.ExpireDate != nil && p.ExpireDate.Before(p.PurchaseDate) {
		return Validationf("expireDate must not precede purchaseDate")
	}
	return nil
}
