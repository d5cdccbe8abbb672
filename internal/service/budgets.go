package service

import (
	"context"

	"inventory/m/domain"
)

func (s *Service) CreateBudget(ctx context.Context, in domain.BudgetInput) (domain.Budget, error) {
	b, err := in.NewBudget()
	if err != nil {
		return domain.Budget{}, err
	}
	return s.store.CreateBudget(ctx, b)
}

func (s *Service) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return s.store.ListBudgets(ctx)
}

func (s *Service) GetBudget(ctx context.Context, id int64) (domain.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

func (s *Service) UpdateBudget(ctx context.Context, id int64, in domain.BudgetInput) (domain.Budget, error) {
	return s.store.UpdateBudget(ctx, id, in)
}

func (s *Service) DeleteBudget(ctx context.Context, id int64) error {
	return s.store.DeleteBudget(ctx, id)
}
