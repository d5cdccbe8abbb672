package store

import (
	"context"
	"time"

	"inventory/m/domain"
)

const saleLineSelect = `SELECT s.id AS sale_id, s.sale_price_cents, pu.cost_price_cents, s.quantity,
	COALESCE(p.name, '') AS product_name, s.sale_date
	FROM sales s
	JOIN purchases pu ON pu.id = s.purchase_id
	LEFT JOIN products p ON p.id = pu.product_id`

// SaleLines returns every sale joined with its purchase and product, ordered by
// sale id. A non-nil range restricts sale_date to [from, to).
func (s *Store) SaleLines(ctx context.Context, from, to *time.Time) ([]domain.SaleLine, error) {
	query := saleLineSelect
	var args []any
	if from != nil && to != nil {
		query += ` WHERE s.sale_date >= ? AND s.sale_date < ?`
		args = append(args, from.UTC(), to.UTC())
	}
	query += ` ORDER BY s.id`

	lines := []domain.SaleLine{}
	if err := list(ctx, s.db, &lines, query, args...); err != nil {
		return nil, classify("list sale lines", err)
	}
	return lines, nil
}

// SaleLine returns the joined line for one sale.
func (s *Store) SaleLine(ctx context.Context, saleID int64) (domain.SaleLine, error) {
	var l domain.SaleLine
	err := get(ctx, s.db, &l, saleLineSelect+` WHERE s.id = ?`, saleID)
	if isNoRows(err) {
		return l, domain.NotFoundf("sale not found")
	}
	if err != nil {
		return l, classify("get sale line", err)
	}
	return l, nil
}
