package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Risk tier values stored in Customer.Status.
const (
	StatusHighRisk     = "high_risk"
	StatusModerateRisk = "moderate_risk"
	StatusLowRisk      = "low_risk"
)

// Customer is one portfolio account. RiskScore and Status are derived at
// ingestion time; Status is a snapshot and is only recomputed on request.
type Customer struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID           uuid.UUID       `gorm:"type:uuid;index;not null" json:"owner_id"`
	UploadBatchID     *uuid.UUID      `gorm:"type:uuid;index" json:"upload_batch_id,omitempty"`
	Name              string          `gorm:"index;not null" json:"name"`
	Email             *string         `json:"email"`
	Phone             *string         `json:"phone"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"outstanding_amount"`
	DaysOverdue       int             `gorm:"not null;default:0" json:"days_overdue"`
	RiskScore         int             `gorm:"index;not null" json:"risk_score"`
	Status            string          `gorm:"index;not null" json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
