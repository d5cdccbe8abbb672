package store

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

// CatalogItem is one product to import together with its category name.
type CatalogItem struct {
	Category string
	Product  domain.Product
}

// ImportCatalog inserts items in a single transaction, creating categories by
// name as needed. Products already present in their category by name are
// skipped. It returns the number of products inserted.
func (s *Store) ImportCatalog(ctx context.Context, items []CatalogItem) (int, error) {
	inserted := 0
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		now := s.now()
		categories := make(map[string]int64)
		for _, it := range items {
			name := strings.TrimSpace(it.Category)
			id, ok := categories[name]
			if !ok {
				var err error
				id, err = findOrCreateCategory(ctx, tx, name, now)
				if err != nil {
					return err
				}
				categories[name] = id
			}
			p := it.Product
			var n int
			if err := get(ctx, tx, &n, `SELECT COUNT(1) FROM products WHERE name = ? AND category_id = ?`, p.Name, id); err != nil {
				return classify("check product "+p.Name, err)
			}
			if n > 0 {
				continue
			}
			_, err := insert(ctx, tx, `INSERT INTO products
				(name, quantity, price_cents, expire_date, status, category_id, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.Name, p.Quantity, p.Price, utc(p.ExpireDate), domain.StatusFor(p.Quantity), id, now, now)
			if err != nil {
				return classify("import product "+p.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func findOrCreateCategory(ctx context.Context, q sqlx.ExtContext, name string, now time.Time) (int64, error) {
	var id int64
	err := get(ctx, q, &id, `SELECT id FROM categories WHERE name = ?`, name)
	if err == nil {
		return id, nil
	}
	if !isNoRows(err) {
		return 0, classify("find category", err)
	}
	id, err = insert(ctx, q, `INSERT INTO categories (name, created_at, updated_at) VALUES (?, ?, ?)`, name, now, now)
	if err != nil {
		return 0, classify("create category "+name, err)
	}
	return id, nil
}
