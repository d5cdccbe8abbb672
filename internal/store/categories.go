package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"inventory/m/domain"
)

const categoryColumns = `id, name, created_at, updated_at`

// CreateCategory inserts a category with a unique name.
func (s *Store) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var c domain.Category
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := ensureCategoryNameFree(ctx, tx, name, 0); err != nil {
			return err
		}
		now := s.now()
		id, err := insert(ctx, tx, `INSERT INTO categories (name, created_at, updated_at) VALUES (?, ?, ?)`, name, now, now)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Conflictf("category already exists")
			}
			return classify("insert category", err)
		}
		c, err = categoryByID(ctx, tx, id)
		return err
	})
	return c, err
}

// ListCategories returns every category with its products, ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats := []domain.Category{}
	if err := list(ctx, s.db, &cats, `SELECT `+categoryColumns+` FROM categories ORDER BY id`); err != nil {
		return nil, classify("list categories", err)
	}
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int64][]domain.Product, len(cats))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}
	for i := range cats {
		cats[i].Products = byCategory[cats[i].ID]
	}
	return cats, nil
}

// GetCategory returns one category with its products.
func (s *Store) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	c, err := categoryByID(ctx, s.db, id)
	if err != nil {
		return c, err
	}
	products := []domain.Product{}
	if err := list(ctx, s.db, &products, productSelect+` WHERE p.category_id = ? ORDER BY p.id`, id); err != nil {
		return c, classify("list category products", err)
	}
	c.Products = products
	return c, nil
}

// UpdateCategory renames a category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, name string) (domain.Category, error) {
	var c domain.Category
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := categoryByID(ctx, tx, id); err != nil {
			return err
		}
		if err := ensureCategoryNameFree(ctx, tx, name, id); err != nil {
			return err
		}
		if _, err := exec(ctx, tx, `UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`, name, s.now(), id); err != nil {
			if isUniqueViolation(err) {
				return domain.Conflictf("category already exists")
			}
			return classify("update category", err)
		}
		var err error
		c, err = categoryByID(ctx, tx, id)
		return err
	})
	return c, err
}

// DeleteCategory removes a category that no product references.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := categoryByID(ctx, tx, id); err != nil {
			return err
		}
		used, err := referenced(ctx, tx, "products", "category_id", id)
		if err != nil {
			return classify("check category products", err)
		}
		if used {
			return domain.Conflictf("category still has products")
		}
		if _, err := exec(ctx, tx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return classify("delete category", err)
		}
		return nil
	})
}

// CategoryByName finds a category by exact name. found is false when none exists.
func (s *Store) CategoryByName(ctx context.Context, name string) (domain.Category, bool, error) {
	var c domain.Category
	err := get(ctx, s.db, &c, `SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name)
	if isNoRows(err) {
		return c, false, nil
	}
	if err != nil {
		return c, false, classify("get category by name", err)
	}
	return c, true, nil
}

func categoryByID(ctx context.Context, q sqlx.ExtContext, id int64) (domain.Category, error) {
	var c domain.Category
	err := get(ctx, q, &c, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	if isNoRows(err) {
		return c, domain.NotFoundf("category not found")
	}
	if err != nil {
		return c, classify("get category", err)
	}
	return c, nil
}

func ensureCategoryNameFree(ctx context.Context, q sqlx.ExtContext, name string, except int64) error {
	var n int
	if err := get(ctx, q, &n, `SELECT COUNT(1) FROM categories WHERE name = ? AND id <> ?`, name, except); err != nil {
		return classify("check category name", err)
	}
	if n > 0 {
		return domain.Conflictf("category already exists")
	}
	return nil
}
