package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const AnalysisTypeComprehensive = "comprehensive_risk_assessment"

// Insights is the narrative part of an analysis.
type Insights struct {
	Summary             string   `json:"summary"`
	Details             []string `json:"details"`
	EmotionalIndicators string   `json:"emotional_indicators"`
	EngagementReadiness string   `json:"engagement_readiness"`
}

// RiskFactor is one row of the risk assessment factor table.
type RiskFactor struct {
	Factor string `json:"factor"`
	Score  int    `json:"score"`
	Impact string `json:"impact"`
}

type RiskAssessment struct {
	OverallScore          int          `json:"overall_score"`
	Factors               []RiskFactor `json:"factors"`
	ProbabilityOfRecovery string       `json:"probability_of_recovery"`
	ExpectedRecoveryTime  string       `json:"expected_recovery_time"`
}

type RecommendedAction struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Channel  string `json:"channel"`
	Timing   string `json:"timing"`
	Script   string `json:"script"`
}

// AnalysisResult is an immutable record of one insight run. CustomerID is a
// weak reference; re-running analysis inserts a new row.
type AnalysisResult struct {
	ID                 uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID            uuid.UUID                               `gorm:"type:uuid;index;not null" json:"owner_id"`
	CustomerID         uuid.UUID                               `gorm:"type:uuid;index" json:"customer_id"`
	AnalysisType       string                                  `gorm:"not null" json:"analysis_type"`
	AIInsights         datatypes.JSONType[Insights]            `json:"ai_insights"`
	RiskAssessment     datatypes.JSONType[RiskAssessment]      `json:"risk_assessment"`
	RecommendedActions datatypes.JSONType[[]RecommendedAction] `json:"recommended_actions"`
	ConfidenceScore    int                                     `json:"confidence_score"`
	CreatedAt          time.Time                               `json:"created_at"`
}
