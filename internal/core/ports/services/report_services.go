package services

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/export"
)

// ReportSvcFacade builds reports and renders exports.
type ReportSvcFacade interface {
	// MonthlyReport fails with apperrors.ErrNotFound when the month has no closures.
	MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthlyReport, error)
	ExportMonthlyReport(ctx context.Context, userID string, year int, month time.Month, format export.Format) (*export.Document, error)
	ExportClosure(ctx context.Context, userID, closureID string, format export.Format) (*export.Document, error)
}
