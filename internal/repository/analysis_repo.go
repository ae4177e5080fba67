package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"

	"collections-risk-backend/internal/models"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// InsertAnalysisResult always creates a new row; results are never updated.
func (r *AnalysisRepository) InsertAnalysisResult(ctx context.Context, result *models.AnalysisResult) (*models.AnalysisResult, error) {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return nil, eris.Wrap(err, "repository: insert analysis result")
	}
	return result, nil
}

// ListByCustomer returns stored results for one customer, newest first.
func (r *AnalysisRepository) ListByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) ([]models.AnalysisResult, error) {
	var results []models.AnalysisResult
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, eris.Wrap(err, "repository: list analysis results")
	}
	return results, nil
}
