package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/events"
	"inventory/m/internal/logger"
)

// CreatePurchase records a purchase and charges its cost to the budget.
func (s *Service) CreatePurchase(ctx context.Context, in domain.PurchaseInput) (domain.Purchase, error) {
	p, err := in.NewPurchase(s.now())
	if err != nil {
		return domain.Purchase{}, err
	}
	created, err := s.store.CreatePurchase(ctx, p)
	if err != nil {
		s.countRejection(err)
		return domain.Purchase{}, err
	}

	s.metrics.PurchasesCreated.Inc()
	logger.FromContext(ctx).Info("purchase created",
		zap.Int64("purchase_id", created.ID),
		zap.Int64("budget_id", created.BudgetID),
		zap.String("cost", created.Cost().StringFixed(2)),
	)
	s.publish(ctx, events.PurchaseCreated, created)
	return created, nil
}

func (s *Service) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	return s.store.ListPurchases(ctx)
}

func (s *Service) GetPurchase(ctx context.Context, id int64) (domain.Purchase, error) {
	return s.store.GetPurchase(ctx, id)
}

// UpdatePurchase edits a purchase without touching the budget balance.
func (s *Service) UpdatePurchase(ctx context.Context, id int64, upd domain.PurchaseUpdate) (domain.Purchase, error) {
	return s.store.UpdatePurchase(ctx, id, upd)
}

func (s *Service) DeletePurchase(ctx context.Context, id int64) error {
	return s.store.DeletePurchase(ctx, id)
}
