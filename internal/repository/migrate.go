package repository

import (
	"github.com/rotisserie/eris"
	"gorm.io/gorm"

	"collections-risk-backend/internal/models"
)

// Migrate creates or updates the tables backing the record store.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.UploadBatch{},
		&models.AnalysisResult{},
	)
	return eris.Wrap(err, "repository: migrate")
}
