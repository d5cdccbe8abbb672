package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/auth"
	"inventory/m/internal/events"
	"inventory/m/internal/logger"
	"inventory/m/internal/metrics"
	"inventory/m/internal/store"
)

// Service validates input, applies the business rules through the store, and
// announces committed writes.
type Service struct {
	store   *store.Store
	hasher  auth.PasswordHasher
	tokens  auth.TokenIssuer
	events  events.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// Deps are the collaborators of a Service. Nil Events and Metrics get no-op defaults.
type Deps struct {
	Store   *store.Store
	Hasher  auth.PasswordHasher
	Tokens  auth.TokenIssuer
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func New(d Deps) *Service {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	return &Service{
		store:   d.Store,
		hasher:  d.Hasher,
		tokens:  d.Tokens,
		events:  d.Events,
		metrics: d.Metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Ping reports whether the datastore is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// publish runs after commit; delivery failures are logged and otherwise ignored.
func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	e := events.New(eventType, payload)
	if err := s.events.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("event not published",
			zap.String("event_type", eventType),
			zap.String("event_id", e.ID),
			zap.Error(err),
		)
	}
}

var rejectionReasons = map[*domain.Error]string{
	domain.ErrInsufficientBudget: "insufficient_budget",
	domain.ErrPurchaseDepleted:   "purchase_depleted",
	domain.ErrInsufficientStock:  "insufficient_stock",
}

func (s *Service) countRejection(err error) {
	for sentinel, reason := range rejectionReasons {
		if errors.Is(err, sentinel) {
			s.metrics.RuleRejections.WithLabelValues(reason).Inc()
			return
		}
	}
}
