package service

import (
	"context"

	"inventory/m/domain"
)

func (s *Service) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	in, err := in.Validate()
	if err != nil {
		return domain.Category{}, err
	}
	return s.store.CreateCategory(ctx, in.Name)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error) {
	in, err := in.Validate()
	if err != nil {
		return domain.Category{}, err
	}
	return s.store.UpdateCategory(ctx, id, in.Name)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	p, err := in.NewProduct()
	if err != nil {
		return domain.Product{}, err
	}
	return s.store.CreateProduct(ctx, p)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// UpdateProduct validation happens inside the store transaction, against the
// current row.
func (s *Service) UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error) {
	return s.store.UpdateProduct(ctx, id, upd)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}
