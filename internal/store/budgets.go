package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

const budgetColumns = `id, name, amount_cents, created_at, updated_at`

// CreateBudget inserts a budget.
func (s *Store) CreateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	now := s.now()
	id, err := insert(ctx, s.db, `INSERT INTO budgets (name, amount_cents, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		b.Name, b.Amount, now, now)
	if err != nil {
		return b, classify("insert budget", err)
	}
	return budgetByID(ctx, s.db, id)
}

// ListBudgets returns budgets, newest first.
func (s *Store) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	budgets := []domain.Budget{}
	if err := list(ctx, s.db, &budgets, `SELECT `+budgetColumns+` FROM budgets ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, classify("list budgets", err)
	}
	return budgets, nil
}

// GetBudget returns a budget with the purchases charged to it.
func (s *Store) GetBudget(ctx context.Context, id int64) (domain.Budget, error) {
	b, err := budgetByID(ctx, s.db, id)
	if err != nil {
		return b, err
	}
	purchases := []domain.Purchase{}
	if err := list(ctx, s.db, &purchases, purchaseSelect+` WHERE pu.budget_id = ? ORDER BY pu.id`, id); err != nil {
		return b, classify("list budget purchases", err)
	}
	b.Purchases = purchases
	return b, nil
}

// UpdateBudget changes name and/or amount. The amount replaces the balance.
func (s *Store) UpdateBudget(ctx context.Context, id int64, in domain.BudgetInput) (domain.Budget, error) {
	var out domain.Budget
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		b, err := budgetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := in.Apply(&b); err != nil {
			return err
		}
		_, err = exec(ctx, tx, `UPDATE budgets SET name = ?, amount_cents = ?, updated_at = ? WHERE id = ?`,
			b.Name, b.Amount, s.now(), id)
		if err != nil {
			return classify("update budget", err)
		}
		out, err = budgetByID(ctx, tx, id)
		return err
	})
	return out, err
}

// DeleteBudget removes a budget no purchase references.
func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := budgetByID(ctx, tx, id); err != nil {
			return err
		}
		used, err := referenced(ctx, tx, "purchases", "budget_id", id)
		if err != nil {
			return classify("check budget purchases", err)
		}
		if used {
			return domain.Conflictf("budget is referenced by purchases")
		}
		if _, err := exec(ctx, tx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
			return classify("delete budget", err)
		}
		return nil
	})
}

func budgetByID(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Budget, error) {
	var b domain.Budget
	err := get(ctx, q, &b, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	if isNoRows(err) {
		return b, domain.NotFoundf("budget not found")
	}
	if err != nil {
		return b, classify("get budget", err)
	}
	return b, nil
}
