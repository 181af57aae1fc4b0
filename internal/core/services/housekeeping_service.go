package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
)

type housekeepingService struct {
	BaseService
	openingRepo      portsrepo.OpeningReader
	salePurger       portsrepo.SalePurger
	withdrawalPurger portsrepo.WithdrawalPurger
}

func NewHousekeepingService(openingRepo portsrepo.OpeningReader, salePurger portsrepo.SalePurger, withdrawalPurger portsrepo.WithdrawalPurger, opts ...ServiceOption) portssvc.HousekeepingSvcFacade {
	return &housekeepingService{
		BaseService:      newBaseService(opts),
		openingRepo:      openingRepo,
		salePurger:       salePurger,
		withdrawalPurger: withdrawalPurger,
	}
}

var _ portssvc.HousekeepingSvcFacade = (*housekeepingService)(nil)

func (s *housekeepingService) WarnStaleDrawers(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.Now().Add(-maxAge)
	openings, err := s.openingRepo.FindActiveOpeningsCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale openings: %w", err)
	}
	for _, o := range openings {
		s.LogWarn(ctx, "Drawer left open",
			slog.String("user_id", o.UserID),
			slog.String("opening_id", o.OpeningID),
			slog.String("opened_at", datetime.FormatBRDateTime(o.CreatedAt, s.BusinessLocation())))
	}
	return len(openings), nil
}

func (s *housekeepingService) PurgeDeletedRecords(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.Now().Add(-retention)

	sales, err := s.salePurger.PurgeDeletedSales(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sales: %w", err)
	}
	withdrawals, err := s.withdrawalPurger.PurgeDeletedWithdrawals(ctx, cutoff)
	if err != nil {
		return sales, fmt.Errorf("failed to purge withdrawals: %w", err)
	}

	s.LogInfo(ctx, "Purged soft deleted records", slog.Int64("sales", sales), slog.Int64("withdrawals", withdrawals))
	return sales + withdrawals, nil
}
