package models

import (
	"time"

	"github.com/google/uuid"
)

const UploadStatusCompleted = "completed"

// UploadBatch records one ingested file.
type UploadBatch struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	FileName         string    `json:"file_name"`
	FileType         string    `json:"file_type"`
	ProcessingStatus string    `gorm:"index" json:"processing_status"`
	RecordsProcessed int       `json:"records_processed"`
	RecordsSkipped   int       `json:"records_skipped"`
	FieldsDefaulted  int       `json:"fields_defaulted"`
	CreatedAt        time.Time `json:"created_at"`
}
