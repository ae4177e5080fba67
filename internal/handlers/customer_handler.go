package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"collections-risk-backend/internal/middleware"
	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/repository"
	"collections-risk-backend/internal/services/ingest"
	"collections-risk-backend/internal/services/portfolio"
)

type Uploader interface {
	Upload(ctx context.Context, in ingest.Upload) (*ingest.Report, error)
}

type PortfolioService interface {
	List(ctx context.Context, ownerID uuid.UUID, filter repository.CustomerFilter) ([]models.Customer, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Customer, error)
	Summary(ctx context.Context, ownerID uuid.UUID) (*portfolio.Summary, error)
	Reclassify(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type UploadLister interface {
	ListUploadBatches(ctx context.Context, ownerID uuid.UUID) ([]models.UploadBatch, error)
}

type CustomerHandler struct {
	uploader  Uploader
	portfolio PortfolioService
	uploads   UploadLister
	maxBytes  int64
}

const defaultMaxBytes = 10 << 20

func NewCustomerHandler(uploader Uploader, p PortfolioService, uploads UploadLister, maxBytes int64) *CustomerHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &CustomerHandler{
		uploader:  uploader,
		portfolio: p,
		uploads:   uploads,
		maxBytes:  maxBytes,
	}
}

// Upload ingests a CSV file synchronously and returns the batch report.
func (h *CustomerHandler) Upload(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	if int64(len(body)) > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	report, err := h.uploader.Upload(c.Request.Context(), ingest.Upload{
		OwnerID:  owner,
		FileName: header.Filename,
		FileType: header.Header.Get("Content-Type"),
		Content:  string(body),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": report.Message(),
		"report":  report,
	})
}

func (h *CustomerHandler) List(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	filter := repository.CustomerFilter{
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	customers, err := h.portfolio.List(c.Request.Context(), owner, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  customers,
		"total": len(customers),
	})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.portfolio.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Reclassify resets stored statuses from stored risk scores.
func (h *CustomerHandler) Reclassify(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	updated, err := h.portfolio.Reclassify(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *CustomerHandler) Summary(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	summary, err := h.portfolio.Summary(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *CustomerHandler) ListUploads(c *gin.Context) {
	owner, ok := ownerOrAbort(c)
	if !ok {
		return
	}

	batches, err := h.uploads.ListUploadBatches(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": batches})
}

func ownerOrAbort(c *gin.Context) (uuid.UUID, bool) {
	owner, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid owner id"})
	}
	return owner, ok
}

func idParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to status codes. Anything unrecognised is
// a store failure and is surfaced with its message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFileType), errors.Is(err, ingest.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": rootMessage(err)})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func rootMessage(err error) string {
	for _, sentinel := range []error{ingest.ErrUnsupportedFileType, ingest.ErrEmptyFile} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
