package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/SscSPs/livro_caixa/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const defaultClosurePageSize = 20

type closureService struct {
	BaseService
	closureRepo    portsrepo.ClosureRepositoryFacade
	openingRepo    portsrepo.OpeningRepositoryFacade
	saleRepo       portsrepo.SaleRepositoryFacade
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	drawer         portssvc.DrawerSvcFacade
	cache          portsrepo.DrawerCache
}

// NewClosureService wires closing, reopening and the closure history.
func NewClosureService(
	closureRepo portsrepo.ClosureRepositoryFacade,
	openingRepo portsrepo.OpeningRepositoryFacade,
	saleRepo portsrepo.SaleRepositoryFacade,
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	drawer portssvc.DrawerSvcFacade,
	cache portsrepo.DrawerCache,
	opts ...ServiceOption,
) portssvc.ClosureSvcFacade {
	return &closureService{
		BaseService:    newBaseService(opts),
		closureRepo:    closureRepo,
		openingRepo:    openingRepo,
		saleRepo:       saleRepo,
		withdrawalRepo: withdrawalRepo,
		drawer:         drawer,
		cache:          cache,
	}
}

var _ portssvc.ClosureSvcFacade = (*closureService)(nil)

// countedAmount resolves what was counted. An explicit amount wins over the breakdown.
func countedAmount(req dto.CloseDrawerRequest) (decimal.Decimal, *domain.CashBreakdown, error) {
	var breakdown *domain.CashBreakdown
	if req.CashBreakdown != nil {
		if req.CashBreakdown.Notes.IsNegative() || req.CashBreakdown.Coins.IsNegative() {
			return decimal.Zero, nil, fmt.Errorf("%w: valores de notas e moedas não podem ser negativos", apperrors.ErrValidation)
		}
		breakdown = &domain.CashBreakdown{
			Notes: req.CashBreakdown.Notes.Round(2),
			Coins: req.CashBreakdown.Coins.Round(2),
		}
	}

	switch {
	case req.CountedAmount != nil:
		if req.CountedAmount.IsNegative() {
			return decimal.Zero, nil, fmt.Errorf("%w: valor contado não pode ser negativo", apperrors.ErrValidation)
		}
		return req.CountedAmount.Round(2), breakdown, nil
	case breakdown != nil:
		return breakdown.Total(), breakdown, nil
	default:
		return decimal.Zero, nil, fmt.Errorf("%w: informe o valor contado ou a contagem de notas e moedas", apperrors.ErrValidation)
	}
}

func (s *closureService) CloseDrawer(ctx context.Context, userID string, req dto.CloseDrawerRequest) (*domain.Closure, error) {
	counted, breakdown, err := countedAmount(req)
	if err != nil {
		return nil, err
	}

	opening, err := s.drawer.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindSalesByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for closure: %w", err)
	}
	withdrawals, err := s.withdrawalRepo.FindWithdrawalsByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawals for closure: %w", err)
	}

	closureID := uuid.NewString()
	if opening.OriginClosureID != nil && *opening.OriginClosureID != "" {
		closureID = *opening.OriginClosureID
	}

	now, day, clock := s.Stamp()
	closure := domain.ReconcileOpening(closureID, *opening, sales, withdrawals, counted, breakdown)
	closure.Date = day
	closure.Time = clock
	closure.AuditFields = domain.NewAuditFields(now, userID)

	if err := s.closureRepo.UpsertClosure(ctx, closure); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: caixa já foi fechado", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to save closure", slog.String("opening_id", opening.OpeningID))
		return nil, fmt.Errorf("failed to close drawer: %w", err)
	}
	s.drawer.Forget(ctx, userID)

	s.LogInfo(ctx, "Drawer closed",
		slog.String("closure_id", closure.ClosureID),
		slog.String("difference", closure.Difference.StringFixed(2)))
	s.Track(ctx, userID, EventDrawerClosed, map[string]any{
		"closure_id":  closure.ClosureID,
		"total_sales": closure.TotalSales.String(),
		"difference":  closure.Difference.String(),
	})
	return &closure, nil
}

func (s *closureService) ReopenClosure(ctx context.Context, userID, closureID string) (reopened bool, err error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, userID, closureID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find closure: %w", err)
	}

	var restore *domain.Opening
	if closure.OpeningID != nil {
		restore, err = s.openingRepo.FindOpeningByID(ctx, userID, *closure.OpeningID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("failed to find opening of closure: %w", err)
		}
	}

	now, _, clock := s.Stamp()

	tx, err := s.openingRepo.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin reopen transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.openingRepo.Rollback(ctx, tx)
		}
	}()

	// Same lock as opening a drawer, so no other opening can become active meanwhile.
	if err = s.openingRepo.LockUserOpeningsTx(ctx, tx, userID); err != nil {
		return false, err
	}
	active, findErr := s.openingRepo.FindLatestActiveOpeningTx(ctx, tx, userID)
	if findErr != nil && !errors.Is(findErr, apperrors.ErrNotFound) {
		err = fmt.Errorf("failed to find active opening: %w", findErr)
		return false, err
	}

	switch {
	case active != nil && closure.OpeningID != nil && active.OpeningID == *closure.OpeningID:
		restore = active
	case active != nil:
		if err = s.discardOpening(ctx, tx, userID, active.OpeningID, now); err != nil {
			return false, err
		}
	}

	if restore == nil {
		if restore, err = s.rebuildOpening(ctx, tx, closure, now, clock); err != nil {
			return false, err
		}
	}

	if err = s.closureRepo.MarkClosureReopenedTx(ctx, tx, userID, closure.ClosureID, now); err != nil {
		return false, fmt.Errorf("failed to mark closure reopened: %w", err)
	}
	if err = s.openingRepo.Commit(ctx, tx); err != nil {
		return false, fmt.Errorf("failed to commit reopen: %w", err)
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, *restore); cacheErr != nil {
			s.LogError(ctx, cacheErr, "Failed to cache reopened opening", slog.String("opening_id", restore.OpeningID))
		}
	}

	s.LogInfo(ctx, "Closure reopened",
		slog.String("closure_id", closure.ClosureID),
		slog.String("opening_id", restore.OpeningID))
	s.Track(ctx, userID, EventDrawerReopened, map[string]any{
		"closure_id": closure.ClosureID,
		"opening_id": restore.OpeningID,
		"legacy":     closure.OpeningID == nil,
	})
	return true, nil
}

// discardOpening soft deletes an opening together with its sales and withdrawals.
func (s *closureService) discardOpening(ctx context.Context, tx pgx.Tx, userID, openingID string, now time.Time) error {
	if err := s.saleRepo.MarkSalesDeletedByOpeningTx(ctx, tx, userID, openingID, now); err != nil {
		return fmt.Errorf("failed to discard sales of current opening: %w", err)
	}
	if err := s.withdrawalRepo.MarkWithdrawalsDeletedByOpeningTx(ctx, tx, userID, openingID, now); err != nil {
		return fmt.Errorf("failed to discard withdrawals of current opening: %w", err)
	}
	if err := s.openingRepo.MarkOpeningDeletedTx(ctx, tx, userID, openingID, now); err != nil {
		return fmt.Errorf("failed to discard current opening: %w", err)
	}
	s.LogInfo(ctx, "Discarded current opening before reopen", slog.String("opening_id", openingID))
	return nil
}

// rebuildOpening recreates the session of a closure that has no opening to go back to.
// Embedded sales and withdrawals are copied under fresh ids.
func (s *closureService) rebuildOpening(ctx context.Context, tx pgx.Tx, closure *domain.Closure, now time.Time, clock string) (*domain.Opening, error) {
	originID := closure.ClosureID
	opening := domain.Opening{
		OpeningID:       uuid.NewString(),
		UserID:          closure.UserID,
		Date:            closure.Date,
		Time:            clock,
		StartingAmount:  closure.StartingAmount,
		OriginClosureID: &originID,
		AuditFields:     domain.NewAuditFields(now, closure.UserID),
	}
	if err := s.openingRepo.SaveOpeningTx(ctx, tx, opening); err != nil {
		return nil, fmt.Errorf("failed to recreate opening: %w", err)
	}

	sales := make([]domain.Sale, len(closure.Sales))
	for i, sale := range closure.Sales {
		sale.SaleID = uuid.NewString()
		sale.UserID = opening.UserID
		sale.OpeningID = opening.OpeningID
		sale.AuditFields = domain.NewAuditFields(now, opening.UserID)
		sale.DeletedAt = nil
		sales[i] = sale
	}
	if err := s.saleRepo.SaveSalesTx(ctx, tx, sales); err != nil {
		return nil, fmt.Errorf("failed to recreate sales: %w", err)
	}

	withdrawals := make([]domain.Withdrawal, len(closure.Withdrawals))
	for i, w := range closure.Withdrawals {
		w.WithdrawalID = uuid.NewString()
		w.UserID = opening.UserID
		w.OpeningID = opening.OpeningID
		w.AuditFields = domain.NewAuditFields(now, opening.UserID)
		w.DeletedAt = nil
		withdrawals[i] = w
	}
	if err := s.withdrawalRepo.SaveWithdrawalsTx(ctx, tx, withdrawals); err != nil {
		return nil, fmt.Errorf("failed to recreate withdrawals: %w", err)
	}

	s.LogDebug(ctx, "Rebuilt opening from legacy closure",
		slog.String("closure_id", closure.ClosureID),
		slog.Int("sales", len(sales)),
		slog.Int("withdrawals", len(withdrawals)))
	return &opening, nil
}

func (s *closureService) DeleteClosure(ctx context.Context, userID, closureID string) (err error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, userID, closureID)
	if err != nil {
		return fmt.Errorf("failed to find closure: %w", err)
	}
	now := s.Now()

	tx, err := s.openingRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.openingRepo.Rollback(ctx, tx)
		}
	}()

	if err = s.closureRepo.MarkClosureDeletedTx(ctx, tx, userID, closureID, now); err != nil {
		return fmt.Errorf("failed to delete closure: %w", err)
	}
	// The opening goes too, otherwise it would turn active again.
	if closure.OpeningID != nil {
		err = s.openingRepo.MarkOpeningDeletedTx(ctx, tx, userID, *closure.OpeningID, now)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to delete opening of closure: %w", err)
		}
		err = nil
	}
	if err = s.openingRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit closure deletion: %w", err)
	}

	s.drawer.Forget(ctx, userID)
	return nil
}

func (s *closureService) GetClosure(ctx context.Context, userID, closureID string) (*domain.Closure, error) {
	closure, err := s.closureRepo.FindClosureByID(ctx, userID, closureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closure: %w", err)
	}
	return closure, nil
}

func (s *closureService) ListClosures(ctx context.Context, userID string, params dto.ListClosuresParams) ([]domain.Closure, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultClosurePageSize
	}
	// One extra row tells whether another page exists.
	filter := portsrepo.ClosureListFilter{Limit: limit + 1}

	if params.Month != "" {
		year, month, err := datetime.ParseMonth(params.Month)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		from, to := datetime.MonthBounds(year, month)
		filter.From, filter.To = &from, &to
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeClosureCursor(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = &cursor
	}

	closures, err := s.closureRepo.ListClosures(ctx, userID, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list closures: %w", err)
	}

	var nextToken string
	if len(closures) > limit {
		closures = closures[:limit]
		last := closures[limit-1]
		nextToken = pagination.EncodeClosureCursor(pagination.ClosureCursor{
			ClosureDate: last.Date,
			CreatedAt:   last.CreatedAt,
			ClosureID:   last.ClosureID,
		})
	}
	return closures, nextToken, nil
}

func (s *closureService) ListClosureMonths(ctx context.Context, userID string) ([]domain.ClosureMonth, error) {
	months, err := s.closureRepo.CountClosuresByMonth(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list closure months: %w", err)
	}
	return months, nil
}
