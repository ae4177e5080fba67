package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"collections-risk-backend/internal/models"
	"collections-risk-backend/internal/services/scoring"
)

// CustomerStore persists a scored batch in one all-or-nothing call.
type CustomerStore interface {
	InsertCustomers(ctx context.Context, customers []models.Customer) (int, error)
}

type UploadStore interface {
	InsertUploadBatch(ctx context.Context, batch *models.UploadBatch) error
}

// Invalidator drops cached portfolio views for an owner.
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Upload is one file handed to the pipeline.
type Upload struct {
	OwnerID  uuid.UUID
	FileName string
	FileType string
	Content  string
}

// Report summarizes one ingested file.
type Report struct {
	BatchID           uuid.UUID `json:"batch_id"`
	FileName          string    `json:"file_name"`
	InsertedCount     int       `json:"inserted_count"`
	SkippedCount      int       `json:"skipped_count"`
	SkippedRows       []int     `json:"skipped_rows,omitempty"`
	FieldDefaultCount int       `json:"field_default_count"`
	FlaggedRows       []int     `json:"flagged_rows,omitempty"`
	Warnings          []string  `json:"warnings,omitempty"`
}

// Prepared is a parsed, mapped and scored batch ready to be stored.
type Prepared struct {
	Customers []models.Customer
	Report    Report
}

type Service struct {
	customers   CustomerStore
	uploads     UploadStore
	scorer      *scoring.Scorer
	invalidator Invalidator
}

func NewService(customers CustomerStore, uploads UploadStore, scorer *scoring.Scorer, invalidator Invalidator) *Service {
	return &Service{
		customers:   customers,
		uploads:     uploads,
		scorer:      scorer,
		invalidator: invalidator,
	}
}

// CheckFile accepts files with a .csv extension or a text/csv MIME type.
func CheckFile(fileName, fileType string) error {
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(fileType, ";", 2)[0]))
	if mime == "text/csv" || strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return nil
	}
	return eris.Wrapf(ErrUnsupportedFileType, "ingest: %s", fileName)
}

// Prepare runs the CPU-only part of the pipeline: parse, map, score and
// classify every row.
func Prepare(content string, ownerID uuid.UUID, scorer *scoring.Scorer) (*Prepared, error) {
	table, err := Parse(content)
	if err != nil {
		return nil, err
	}

	p := &Prepared{
		Customers: make([]models.Customer, 0, len(table.Rows)),
		Report: Report{
			SkippedCount: len(table.Skipped),
			SkippedRows:  table.Skipped,
			Warnings:     HeaderWarnings(table.Headers),
		},
	}
	for _, idx := range table.Skipped {
		zap.L().Debug("skipping short row", zap.Int("row", idx))
	}

	for _, row := range table.Rows {
		mapped := MapRow(table.Headers, row, ownerID)
		if len(mapped.Defaulted) > 0 {
			p.Report.FieldDefaultCount += len(mapped.Defaulted)
			p.Report.FlaggedRows = append(p.Report.FlaggedRows, row.Index)
			zap.L().Debug("defaulted unparsable fields",
				zap.Int("row", row.Index),
				zap.Strings("fields", mapped.Defaulted),
			)
		}
		scorer.Apply(&mapped.Customer)
		p.Customers = append(p.Customers, mapped.Customer)
	}
	return p, nil
}

// Upload ingests one file. Every row is scored before the single bulk
// insert; a store failure fails the whole batch and is not retried.
func (s *Service) Upload(ctx context.Context, in Upload) (*Report, error) {
	if err := CheckFile(in.FileName, in.FileType); err != nil {
		return nil, err
	}

	prepared, err := Prepare(in.Content, in.OwnerID, s.scorer)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New()
	for i := range prepared.Customers {
		prepared.Customers[i].UploadBatchID = &batchID
	}

	log := zap.L().With(
		zap.String("owner_id", in.OwnerID.String()),
		zap.String("batch_id", batchID.String()),
		zap.String("file", in.FileName),
	)

	inserted := 0
	if len(prepared.Customers) > 0 {
		inserted, err = s.customers.InsertCustomers(ctx, prepared.Customers)
		if err != nil {
			log.Error("insert customers failed", zap.Error(err))
			return nil, eris.Wrap(err, "ingest: insert customers")
		}
		// Customers are committed from here on, whatever happens to the
		// batch row, so cached views of the owner are already stale.
		s.invalidate(ctx, log, in.OwnerID)
	}

	batch := &models.UploadBatch{
		ID:               batchID,
		OwnerID:          in.OwnerID,
		FileName:         in.FileName,
		FileType:         in.FileType,
		ProcessingStatus: models.UploadStatusCompleted,
		RecordsProcessed: inserted,
		RecordsSkipped:   prepared.Report.SkippedCount,
		FieldsDefaulted:  prepared.Report.FieldDefaultCount,
	}
	if err := s.uploads.InsertUploadBatch(ctx, batch); err != nil {
		log.Error("insert upload batch failed", zap.Int("customers_committed", inserted), zap.Error(err))
		return nil, eris.Wrapf(err, "ingest: insert upload batch (%d customer records already stored)", inserted)
	}

	report := prepared.Report
	report.BatchID = batchID
	report.FileName = in.FileName
	report.InsertedCount = inserted

	log.Info("upload processed",
		zap.Int("inserted", report.InsertedCount),
		zap.Int("skipped", report.SkippedCount),
		zap.Int("defaulted_fields", report.FieldDefaultCount),
	)
	return &report, nil
}

func (s *Service) invalidate(ctx context.Context, log *zap.Logger, ownerID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, ownerID); err != nil {
		log.Warn("portfolio cache invalidation failed", zap.Error(err))
	}
}

// Message is the user-facing success line for a report.
func (r *Report) Message() string {
	return fmt.Sprintf("Successfully uploaded %d customer records!", r.InsertedCount)
}
