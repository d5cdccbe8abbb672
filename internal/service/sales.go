package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/events"
	"inventory/m/internal/logger"
)

// CreateSale takes stock out of a purchase and its product.
func (s *Service) CreateSale(ctx context.Context, in domain.SaleInput) (domain.Sale, error) {
	sale, err := in.NewSale(s.now())
	if err != nil {
		return domain.Sale{}, err
	}
	created, err := s.store.CreateSale(ctx, sale)
	if err != nil {
		s.countRejection(err)
		return domain.Sale{}, err
	}

	s.metrics.SalesCreated.Inc()
	s.metrics.UnitsSold.Add(float64(created.Quantity))
	logger.FromContext(ctx).Info("sale created",
		zap.Int64("sale_id", created.ID),
		zap.Int64("purchase_id", created.PurchaseID),
		zap.Int64("quantity", created.Quantity),
	)
	s.publish(ctx, events.SaleCreated, created)
	return created, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.store.ListSales(ctx)
}

func (s *Service) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	return s.store.GetSale(ctx, id)
}
