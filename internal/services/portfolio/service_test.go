package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collections-risk-backend/internal/cache"
	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/repository"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) QueryCustomers(ctx context.Context, ownerID uuid.UUID, filter repository.CustomerFilter) ([]models.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *mockStore) GetCustomer(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *mockStore) UpdateStatuses(ctx context.Context, ownerID uuid.UUID, statuses map[uuid.UUID]string) (int64, error) {
	args := m.Called(ctx, ownerID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T, q CustomerStore) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(q, cache.New(client, time.Minute))
}

func TestSummaryIsCachedUntilInvalidated(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := newTestService(t, q)
	ctx := context.Background()

	q.On("QueryCustomers", mock.Anything, owner, repository.CustomerFilter{}).
		Return([]models.Customer{customer("a", 12000, 95, 88), customer("b", 200, 0, 10)}, nil).Twice()

	s, err := svc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalCount)
	assert.Equal(t, 1, s.HighRiskCount)
	require.Len(t, s.TopOutstanding, 2)
	assert.Equal(t, "a", s.TopOutstanding[0].Name)

	_, err = svc.Summary(ctx, owner)
	require.NoError(t, err)
	q.AssertNumberOfCalls(t, "QueryCustomers", 1)

	require.NoError(t, svc.Invalidate(ctx, owner))
	s, err = svc.Summary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalCount)
	q.AssertNumberOfCalls(t, "QueryCustomers", 2)
}

func TestSummaryWithoutCache(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := NewService(q, nil)

	q.On("QueryCustomers", mock.Anything, owner, repository.CustomerFilter{}).Return([]models.Customer{}, nil)

	s, err := svc.Summary(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, s.TotalCount)
	assert.Zero(t, s.AvgRiskScore)
}

func TestSummarySurfacesStoreError(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := newTestService(t, q)
	q.On("QueryCustomers", mock.Anything, owner, repository.CustomerFilter{}).Return(nil, errors.New("timeout"))

	_, err := svc.Summary(context.Background(), owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestReclassifyUpdatesStaleStatuses(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := newTestService(t, q)
	ctx := context.Background()

	stale := customer("stale", 100, 0, 75)
	stale.Status = models.StatusLowRisk
	fresh := customer("fresh", 100, 0, 20)
	fresh.Status = models.StatusLowRisk

	q.On("QueryCustomers", mock.Anything, owner, repository.CustomerFilter{}).
		Return([]models.Customer{stale, fresh}, nil)
	q.On("UpdateStatuses", mock.Anything, owner, map[uuid.UUID]string{stale.ID: models.StatusHighRisk}).
		Return(int64(1), nil).Once()

	n, err := svc.Reclassify(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	q.AssertExpectations(t)
}

func TestReclassifyNothingStale(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := NewService(q, nil)

	c := customer("ok", 100, 0, 45)
	c.Status = models.StatusModerateRisk
	q.On("QueryCustomers", mock.Anything, owner, repository.CustomerFilter{}).Return([]models.Customer{c}, nil)

	n, err := svc.Reclassify(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, n)
	q.AssertNotCalled(t, "UpdateStatuses", mock.Anything, mock.Anything, mock.Anything)
}

func TestListAndGet(t *testing.T) {
	owner := uuid.New()
	q := new(mockStore)
	svc := NewService(q, nil)
	c := customer("a", 10, 1, 30)
	filter := repository.CustomerFilter{Status: models.StatusLowRisk, Search: "a"}

	q.On("QueryCustomers", mock.Anything, owner, filter).Return([]models.Customer{c}, nil)
	q.On("GetCustomer", mock.Anything, owner, c.ID).Return(&c, nil)
	q.On("GetCustomer", mock.Anything, owner, mock.Anything).Return(nil, repository.ErrNotFound)

	list, err := svc.List(context.Background(), owner, filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.Get(context.Background(), owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
