package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

const saleColumns = `id, purchase_id, quantity, sale_price_cents, sale_date, total_cents, created_at`

// CreateSale takes quantity units out of a purchase and its product and records
// the sale, all in one transaction.
func (s *Store) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	var out domain.Sale
	total := sale.SalePrice.Times(sale.Quantity)
	if !total.InRange() {
		return out, domain.ErrAmountOutOfRange
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var lot struct {
			ProductID int64 `db:"product_id"`
			Quantity  int64 `db:"quantity"`
		}
		err := get(ctx, tx, &lot, `SELECT product_id, quantity FROM purchases WHERE id = ?`, sale.PurchaseID)
		if isNoRows(err) {
			return domain.NotFoundf("purchase not found")
		}
		if err != nil {
			return classify("get purchase", err)
		}
		if lot.Quantity <= 0 {
			return domain.ErrPurchaseDepleted
		}
		if sale.Quantity > lot.Quantity {
			return domain.ErrInsufficientStock
		}

		now := s.now()
		n, err := exec(ctx, tx, `UPDATE purchases SET quantity = quantity - ?, updated_at = ?
			WHERE id = ? AND quantity >= ?`, sale.Quantity, now, sale.PurchaseID, sale.Quantity)
		if err != nil {
			if isCheckViolation(err) {
				return domain.ErrInsufficientStock
			}
			return classify("take purchase stock", err)
		}
		if n == 0 {
			return domain.ErrInsufficientStock
		}

		_, err = exec(ctx, tx, `UPDATE products SET quantity = quantity - ?,
			status = CASE WHEN quantity - ? > 0 THEN 'in_stock' ELSE 'out_of_stock' END,
			updated_at = ? WHERE id = ?`, sale.Quantity, sale.Quantity, now, lot.ProductID)
		if err != nil {
			return classify("take product stock", err)
		}

		id, err := insert(ctx, tx, `INSERT INTO sales
			(purchase_id, quantity, sale_price_cents, total_cents, sale_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sale.PurchaseID, sale.Quantity, sale.SalePrice, total, sale.SaleDate.UTC(), now)
		if err != nil {
			return classify("insert sale", err)
		}
		out, err = saleByID(ctx, tx, id)
		return err
	})
	return out, err
}

// ListSales returns every sale ordered by id.
func (s *Store) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	if err := list(ctx, s.db, &sales, `SELECT `+saleColumns+` FROM sales ORDER BY id`); err != nil {
		return nil, classify("list sales", err)
	}
	return sales, nil
}

// GetSale returns one sale.
func (s *Store) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	return saleByID(ctx, s.db, id)
}

func saleByID(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Sale, error) {
	var sale domain.Sale
	err := get(ctx, q, &sale, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	if isNoRows(err) {
		return sale, domain.NotFoundf("sale not found")
	}
	if err != nil {
		return sale, classify("get sale", err)
	}
	return sale, nil
}
