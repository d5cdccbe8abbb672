package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

const purchaseSelect = `SELECT pu.id, pu.product_id, COALESCE(p.name, '') AS product_name, pu.budget_id,
	pu.quantity, pu.cost_price_cents, pu.purchase_date, pu.expire_date, pu.created_at, pu.updated_at
	FROM purchases pu LEFT JOIN products p ON p.id = pu.product_id`

// CreatePurchase charges quantity*costPrice to the budget and records the
// purchase in the same transaction. The budget is decremented only while it
// covers the cost, so concurrent purchases cannot overdraw it.
func (s *Store) CreatePurchase(ctx context.Context, p domain.Purchase) (domain.Purchase, error) {
	var out domain.Purchase
	cost := p.Cost()
	if p.Quantity <= 0 || !p.CostPrice.IsPositive() {
		return out, domain.Validationf("quantity and costPrice must be greater than zero")
	}
	if !cost.InRange() {
		return out, domain.ErrAmountOutOfRange
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := productByID(ctx, tx, p.ProductID); err != nil {
			return err
		}
		if _, err := budgetByID(ctx, tx, p.BudgetID); err != nil {
			return err
		}

		now := s.now()
		n, err := exec(ctx, tx, `UPDATE budgets SET amount_cents = amount_cents - ?, updated_at = ?
			WHERE id = ? AND amount_cents >= ?`, cost, now, p.BudgetID, cost)
		if err != nil {
			if isCheckViolation(err) {
				return domain.ErrInsufficientBudget
			}
			return classify("charge budget", err)
		}
		if n == 0 {
			return domain.ErrInsufficientBudget
		}

		id, err := insert(ctx, tx, `INSERT INTO purchases
			(product_id, budget_id, quantity, cost_price_cents, purchase_date, expire_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ProductID, p.BudgetID, p.Quantity, p.CostPrice, p.PurchaseDate.UTC(), utc(p.ExpireDate), now, now)
		if err != nil {
			return classify("insert purchase", err)
		}
		out, err = purchaseByID(ctx, tx, id)
		return err
	})
	return out, err
}

// ListPurchases returns all purchases with their product name, ordered by id.
func (s *Store) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	purchases := []domain.Purchase{}
	if err := list(ctx, s.db, &purchases, purchaseSelect+` ORDER BY pu.id`); err != nil {
		return nil, classify("list purchases", err)
	}
	return purchases, nil
}

// GetPurchase returns one purchase.
func (s *Store) GetPurchase(ctx context.Context, id int64) (domain.Purchase, error) {
	return purchaseByID(ctx, s.db, id)
}

// UpdatePurchase edits quantity, cost and dates. The budget balance is left alone.
func (s *Store) UpdatePurchase(ctx context.Context, id int64, upd domain.PurchaseUpdate) (domain.Purchase, error) {
	var out domain.Purchase
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		p, err := purchaseByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := upd.Apply(&p); err != nil {
			return err
		}
		_, err = exec(ctx, tx, `UPDATE purchases SET quantity = ?, cost_price_cents = ?, purchase_date = ?,
			expire_date = ?, updated_at = ? WHERE id = ?`,
			p.Quantity, p.CostPrice, p.PurchaseDate.UTC(), utc(p.ExpireDate), s.now(), id)
		if err != nil {
			return classify("update purchase", err)
		}
		out, err = purchaseByID(ctx, tx, id)
		return err
	})
	return out, err
}

// DeletePurchase removes a purchase no sale references.
func (s *Store) DeletePurchase(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := purchaseByID(ctx, tx, id); err != nil {
			return err
		}
		used, err := referenced(ctx, tx, "sales", "purchase_id", id)
		if err != nil {
			return classify("check purchase sales", err)
		}
		if used {
			return domain.Conflictf("purchase is referenced by sales")
		}
		if _, err := exec(ctx, tx, `DELETE FROM purchases WHERE id = ?`, id); err != nil {
			return classify("delete purchase", err)
		}
		return nil
	})
}

func purchaseByID(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Purchase, error) {
	var p domain.Purchase
	err := get(ctx, q, &p, purchaseSelect+` WHERE pu.id = ?`, id)
	if isNoRows(err) {
		return p, domain.NotFoundf("purchase not found")
	}
	if err != nil {
		return p, classify("get purchase", err)
	}
	return p, nil
}
