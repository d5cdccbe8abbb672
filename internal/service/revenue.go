package service

import (
	"context"
	"time"

	"inventory/m/domain"
)

// Revenue lists the revenue of every sale, ordered by sale id. A non-empty
// month (YYYY-MM) restricts the result to sales in that month.
func (s *Service) Revenue(ctx context.Context, month string) ([]domain.Revenue, error) {
	var from, to *time.Time
	if month != "" {
		start, end, err := domain.ParseMonth(month)
		if err != nil {
			return nil, err
		}
		from, to = &start, &end
	}
	lines, err := s.store.SaleLines(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return domain.Revenues(lines), nil
}

func (s *Service) SaleRevenue(ctx context.Context, saleID int64) (domain.Revenue, error) {
	line, err := s.store.SaleLine(ctx, saleID)
	if err != nil {
		return domain.Revenue{}, err
	}
	return domain.RevenueOf(line), nil
}

// RevenueSummary aggregates a calendar year month by month. Year 0 means the
// current year.
func (s *Service) RevenueSummary(ctx context.Context, year int) ([]domain.MonthSummary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1970 || year > 9999 {
		return nil, domain.Validationf("year is out of range")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	lines, err := s.store.SaleLines(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	return domain.SummarizeYear(domain.Revenues(lines), year), nil
}

// ProductTrends compares units sold per product this month against last month.
func (s *Service) ProductTrends(ctx context.Context) ([]domain.ProductTrend, error) {
	now := s.now()
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from, to := cur.AddDate(0, -1, 0), cur.AddDate(0, 1, 0)
	lines, err := s.store.SaleLines(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	return domain.Trends(domain.Revenues(lines), now), nil
}
