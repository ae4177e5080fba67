package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"

	"collections-risk-backend/internal/models"
)

type UploadBatchRepository struct {
	db *gorm.DB
}

func NewUploadBatchRepository(db *gorm.DB) *UploadBatchRepository {
	return &UploadBatchRepository{db: db}
}

func (r *UploadBatchRepository) InsertUploadBatch(ctx context.Context, batch *models.UploadBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	return eris.Wrap(r.db.WithContext(ctx).Create(batch).Error, "repository: insert upload batch")
}

// ListUploadBatches returns an owner's uploads, newest first.
func (r *UploadBatchRepository) ListUploadBatches(ctx context.Context, ownerID uuid.UUID) ([]models.UploadBatch, error) {
	var batches []models.UploadBatch
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&batches).Error
	if err != nil {
		return nil, eris.Wrap(err, "repository: list upload batches")
	}
	return batches, nil
}
