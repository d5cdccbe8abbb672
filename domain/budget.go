package domain

import (
	"strings"
	"time"
)

type Budget struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Amount    Money      `db:"amount_cents" json:"amount"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	Purchases []Purchase `db:"-" json:"purchases,omitempty"`
}

type BudgetInput struct {
	Name   string `json:"name"`
	Amount *Money `json:"amount"`
}

// NewBudget validates in and returns the budget to insert.
func (in BudgetInput) NewBudget() (Budget, error) {
	b := Budget{Name: strings.TrimSpace(in.Name)}
	if b.Name == "" || in.Amount == nil {
		return b, Validationf("name and amount are required")
	}
	if !in.Amount.IsPositive() {
		return b, Validationf("amount must be a positive number greater than zero")
	}
	if err := checkAmount("amount", *in.Amount); err != nil {
		return b, err
	}
	b.Amount = NewMoney(in.Amount.Decimal)
	return b, nil
}

// Apply treats in as a partial update: an empty name or nil amount keeps the
// current value. Unlike creation, a zero amount is accepted so a spent budget
// can be reset to an empty balance.
func (in BudgetInput) Apply(b *Budget) error {
	if name := strings.TrimSpace(in.Name); name != "" {
		b.Name = name
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return Validationf("amount must not be negative")
		}
		if err := checkAmount("amount", *in.Amount); err != nil {
			return err
		}
		b.Amount = NewMoney(in.Amount.Decimal)
	}
	return nil
}
