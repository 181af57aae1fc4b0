package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/export"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/SscSPs/livro_caixa/internal/utils/pagination"
)

// reportPageSize is how many closures are read per query when building a report.
const reportPageSize = 200

type reportService struct {
	BaseService
	closureRepo portsrepo.ClosureReader
	settings    portssvc.SettingsSvcFacade
}

func NewReportService(closureRepo portsrepo.ClosureReader, settings portssvc.SettingsSvcFacade, opts ...ServiceOption) portssvc.ReportSvcFacade {
	return &reportService{BaseService: newBaseService(opts), closureRepo: closureRepo, settings: settings}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) companyName(ctx context.Context, userID string) string {
	settings, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings for report, using default company name")
		return domain.DefaultCompanyName
	}
	return settings.CompanyName
}

func (s *reportService) MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthlyReport, error) {
	closures, err := s.monthClosures(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	if len(closures) == 0 {
		return nil, fmt.Errorf("%w: Nenhum fechamento encontrado para o mês selecionado", apperrors.ErrNotFound)
	}

	report := domain.BuildMonthlyReport(year, month, s.companyName(ctx, userID), closures)
	report.GeneratedAt = s.Now()
	return &report, nil
}

// monthClosures pages through every live closure of the month, newest first.
func (s *reportService) monthClosures(ctx context.Context, userID string, year int, month time.Month) ([]domain.Closure, error) {
	from, to := datetime.MonthBounds(year, month)
	filter := portsrepo.ClosureListFilter{From: &from, To: &to, Limit: reportPageSize}

	var closures []domain.Closure
	for {
		page, err := s.closureRepo.ListClosures(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load closures for report: %w", err)
		}
		closures = append(closures, page...)
		if len(page) < reportPageSize {
			return closures, nil
		}
		last := page[len(page)-1]
		filter.After = &pagination.ClosureCursor{
			ClosureDate: last.Date,
			CreatedAt:   last.CreatedAt,
			ClosureID:   last.ClosureID,
		}
	}
}

func (s *reportService) ExportMonthlyReport(ctx context.Context, userID string, year int, month time.Month, format export.Format) (*export.Document, error) {
	report, err := s.MonthlyReport(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	doc, err := export.RenderMonthly(export.MonthlyView{Report: *report, Location: s.BusinessLocation()}, format)
	if err != nil {
		s.LogError(ctx, err, "Failed to render monthly report", slog.String("format", string(format)))
		return nil, fmt.Errorf("failed to render monthly report: %w", err)
	}
	return doc, nil
}

func (s *reportService) ExportClosure(ctx context.Context, userID, closureID string, format export.Format) (*export.Document, error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, userID, closureID)
	if err != nil {
		return nil, fmt.Errorf("failed to find closure: %w", err)
	}
	doc, err := export.RenderClosure(export.ClosureView{
		Closure:     *closure,
		CompanyName: s.companyName(ctx, userID),
		GeneratedAt: s.Now(),
		Location:    s.BusinessLocation(),
	}, format)
	if err != nil {
		s.LogError(ctx, err, "Failed to render closure", slog.String("closure_id", closureID), slog.String("format", string(format)))
		return nil, fmt.Errorf("failed to render closure: %w", err)
	}
	return doc, nil
}
