package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"collections-risk-backend/internal/cache"
	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/repository"
	"collections-risk-backend/internal/services/scoring"
)

type CustomerStore interface {
	QueryCustomers(ctx context.Context, ownerID uuid.UUID, filter repository.CustomerFilter) ([]models.Customer, error)
	GetCustomer(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error)
	UpdateStatuses(ctx context.Context, ownerID uuid.UUID, statuses map[uuid.UUID]string) (int64, error)
}

// Service serves an owner's portfolio. Summaries are cached per owner until
// the next upload or reclassification invalidates them.
type Service struct {
	customers CustomerStore
	cache     *cache.Cache
}

func NewService(customers CustomerStore, c *cache.Cache) *Service {
	return &Service{customers: customers, cache: c}
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter repository.CustomerFilter) ([]models.Customer, error) {
	customers, err := s.customers.QueryCustomers(ctx, ownerID, filter)
	if err != nil {
		return nil, eris.Wrap(err, "portfolio: list customers")
	}
	return customers, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error) {
	c, err := s.customers.GetCustomer(ctx, ownerID, id)
	if err != nil {
		return nil, eris.Wrap(err, "portfolio: get customer")
	}
	return c, nil
}

func (s *Service) Summary(ctx context.Context, ownerID uuid.UUID) (*Summary, error) {
	key, err := s.cache.BuildKey(ctx, ownerID.String(), "portfolio", "summary")
	if err != nil {
		return nil, err
	}

	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (any, error) {
		customers, err := s.customers.QueryCustomers(ctx, ownerID, repository.CustomerFilter{})
		if err != nil {
			return nil, eris.Wrap(err, "portfolio: load customers")
		}
		return Summarize(customers), nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Reclassify brings stored statuses back in line with stored risk scores.
// Statuses are snapshots taken at ingestion, so this only runs on request.
func (s *Service) Reclassify(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	customers, err := s.customers.QueryCustomers(ctx, ownerID, repository.CustomerFilter{})
	if err != nil {
		return 0, eris.Wrap(err, "portfolio: load customers")
	}

	changed := map[uuid.UUID]string{}
	for i := range customers {
		if scoring.Reclassify(&customers[i]) {
			changed[customers[i].ID] = customers[i].Status
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}

	updated, err := s.customers.UpdateStatuses(ctx, ownerID, changed)
	if err != nil {
		return 0, eris.Wrap(err, "portfolio: update statuses")
	}
	if err := s.Invalidate(ctx, ownerID); err != nil {
		zap.L().Warn("portfolio cache invalidation failed", zap.String("owner_id", ownerID.String()), zap.Error(err))
	}
	return updated, nil
}

// Invalidate drops cached summaries for the owner.
func (s *Service) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return s.cache.Bump(ctx, ownerID.String())
}
