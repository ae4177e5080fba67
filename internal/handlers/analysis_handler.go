package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/services/insight"
)

type Analyzer interface {
	Analyze(ctx context.Context, ownerID, customerID uuid.UUID) (*models.AnalysisResult, error)
	AnalyzeMany(ctx context.Context, ownerID uuid.UUID, customerIDs []uuid.UUID) ([]*models.AnalysisResult, error)
	History(ctx context.Context, ownerID, customerID uuid.UUID) ([]models.AnalysisResult, error)
}

type AnalysisHandler struct {
	analyzer  Analyzer
	generator *insight.Generator
}

func NewAnalysisHandler(analyzer Analyzer, generator *insight.Generator) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, generator: generator}
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AnalysisHandler) History(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	results, err := h.analyzer.History(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (h *AnalysisHandler) AnalyzeMany(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	var payload struct {
		CustomerIDs []uuid.UUID `json:"customer_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	results, err := h.analyzer.AnalyzeMany(c.Request.Context(), owner, payload.CustomerIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": results, "total": len(results)})
}

// Preview runs the generator on ad-hoc inputs without storing anything.
func (h *AnalysisHandler) Preview(c *gin.Context) {
	var payload struct {
		RiskScore         *int             `json:"risk_score" binding:"required,min=0,max=100"`
		DaysOverdue       int              `json:"days_overdue" binding:"min=0"`
		OutstandingAmount *decimal.Decimal `json:"outstanding_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.OutstandingAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "outstanding_amount must not be negative"})
		return
	}

	c.JSON(http.StatusOK, h.generator.Generate(insight.Input{
		RiskScore:         *payload.RiskScore,
		DaysOverdue:       payload.DaysOverdue,
		OutstandingAmount: *payload.OutstandingAmount,
	}))
}
