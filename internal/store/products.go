package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

const productSelect = `SELECT p.id, p.name, p.quantity, p.price_cents, p.expire_date, p.status,
	p.category_id, c.name AS category_name, p.created_at, p.updated_at
	FROM products p JOIN categories c ON c.id = p.category_id`

// CreateProduct inserts p after checking its category exists.
func (s *Store) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := categoryByID(ctx, tx, p.CategoryID); err != nil {
			return err
		}
		now := s.now()
		id, err := insert(ctx, tx, `INSERT INTO products
			(name, quantity, price_cents, expire_date, status, category_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Quantity, p.Price, utc(p.ExpireDate), domain.StatusFor(p.Quantity), p.CategoryID, now, now)
		if err != nil {
			return classify("insert product", err)
		}
		out, err = productByID(ctx, tx, id)
		return err
	})
	return out, err
}

// ListProducts returns all products with their category name, ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := list(ctx, s.db, &products, productSelect+` ORDER BY p.id`); err != nil {
		return nil, classify("list products", err)
	}
	return products, nil
}

// GetProduct returns one product.
func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return productByID(ctx, s.db, id)
}

// UpdateProduct applies a partial update. Status follows the new quantity.
func (s *Store) UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error) {
	var out domain.Product
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		p, err := productByID(ctx, tx, id)
		if err != nil {
			return err
		}
		previousCategory := p.CategoryID
		if err := upd.Apply(&p); err != nil {
			return err
		}
		if p.CategoryID != previousCategory {
			if _, err := categoryByID(ctx, tx, p.CategoryID); err != nil {
				return err
			}
		}
		_, err = exec(ctx, tx, `UPDATE products SET name = ?, quantity = ?, price_cents = ?, expire_date = ?,
			status = ?, category_id = ?, updated_at = ? WHERE id = ?`,
			p.Name, p.Quantity, p.Price, utc(p.ExpireDate), p.Status, p.CategoryID, s.now(), id)
		if err != nil {
			return classify("update product", err)
		}
		out, err = productByID(ctx, tx, id)
		return err
	})
	return out, err
}

// DeleteProduct removes a product no purchase references.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := productByID(ctx, tx, id); err != nil {
			return err
		}
		used, err := referenced(ctx, tx, "purchases", "product_id", id)
		if err != nil {
			return classify("check product purchases", err)
		}
		if used {
			return domain.Conflictf("product is referenced by purchases")
		}
		if _, err := exec(ctx, tx, `DELETE FROM products WHERE id = ?`, id); err != nil {
			return classify("delete product", err)
		}
		return nil
	})
}

func productByID(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Product, error) {
	var p domain.Product
	err := get(ctx, q, &p, productSelect+` WHERE p.id = ?`, id)
	if isNoRows(err) {
		return p, domain.NotFoundf("product not found")
	}
	if err != nil {
		return p, classify("get product", err)
	}
	return p, nil
}
