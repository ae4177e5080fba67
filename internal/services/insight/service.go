package insight

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"collections-risk-backend/internal/models"
)

type CustomerGetter interface {
	GetCustomer(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error)
}

type ResultStore interface {
	InsertAnalysisResult(ctx context.Context, result *models.AnalysisResult) (*models.AnalysisResult, error)
	ListByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]models.AnalysisResult, error)
}

// Service runs the generator against stored customers and keeps every
// result. Analysing a customer again adds a new result.
type Service struct {
	customers   CustomerGetter
	results     ResultStore
	generator   *Generator
	concurrency int
}

func NewService(customers CustomerGetter, results ResultStore, generator *Generator, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		customers:   customers,
		results:     results,
		generator:   generator,
		concurrency: concurrency,
	}
}

func (s *Service) Analyze(ctx context.Context, ownerID, customerID uuid.UUID) (*models.AnalysisResult, error) {
	c, err := s.customers.GetCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, eris.Wrap(err, "insight: load customer")
	}

	a := s.generator.Generate(InputFor(c))
	result := &models.AnalysisResult{
		OwnerID:            ownerID,
		CustomerID:         c.ID,
		AnalysisType:       models.AnalysisTypeComprehensive,
		AIInsights:         datatypes.NewJSONType(a.Insights),
		RiskAssessment:     datatypes.NewJSONType(a.RiskAssessment),
		RecommendedActions: datatypes.NewJSONType(a.RecommendedActions),
		ConfidenceScore:    a.ConfidenceScore,
	}

	stored, err := s.results.InsertAnalysisResult(ctx, result)
	if err != nil {
		return nil, eris.Wrap(err, "insight: insert analysis result")
	}
	zap.L().Debug("analysis stored",
		zap.String("owner_id", ownerID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("confidence", stored.ConfidenceScore),
	)
	return stored, nil
}

// AnalyzeMany analyses distinct customers concurrently. Repeated ids are
// analysed once. Results are returned in first-seen order; the first error
// cancels the remaining work.
func (s *Service) AnalyzeMany(ctx context.Context, ownerID uuid.UUID, customerIDs []uuid.UUID) ([]*models.AnalysisResult, error) {
	seen := make(map[uuid.UUID]bool, len(customerIDs))
	ids := make([]uuid.UUID, 0, len(customerIDs))
	for _, id := range customerIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	results := make([]*models.AnalysisResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			r, err := s.Analyze(gctx, ownerID, id)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// History lists stored results for a customer, newest first.
func (s *Service) History(ctx context.Context, ownerID, customerID uuid.UUID) ([]models.AnalysisResult, error) {
	results, err := s.results.ListByCustomer(ctx, ownerID, customerID)
	if err != nil {
		return nil, eris.Wrap(err, "insight: list results")
	}
	return results, nil
}
