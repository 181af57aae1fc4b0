package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business events reported to the tracker.
const (
	EventDrawerOpened   = "drawer_opened"
	EventDrawerClosed   = "drawer_closed"
	EventDrawerReopened = "drawer_reopened"
)

type drawerService struct {
	BaseService
	openingRepo    portsrepo.OpeningRepositoryFacade
	closureRepo    portsrepo.ClosureReader
	saleRepo       portsrepo.SaleReader
	withdrawalRepo portsrepo.WithdrawalReader
	cache          portsrepo.DrawerCache
}

// NewDrawerService builds the drawer state resolver. cache may be nil.
func NewDrawerService(
	openingRepo portsrepo.OpeningRepositoryFacade,
	closureRepo portsrepo.ClosureReader,
	saleRepo portsrepo.SaleReader,
	withdrawalRepo portsrepo.WithdrawalReader,
	cache portsrepo.DrawerCache,
	opts ...ServiceOption,
) portssvc.DrawerSvcFacade {
	return &drawerService{
		BaseService:    newBaseService(opts),
		openingRepo:    openingRepo,
		closureRepo:    closureRepo,
		saleRepo:       saleRepo,
		withdrawalRepo: withdrawalRepo,
		cache:          cache,
	}
}

var _ portssvc.DrawerSvcFacade = (*drawerService)(nil)

func (s *drawerService) Resolve(ctx context.Context, userID string) (*domain.Opening, error) {
	if cached := s.cachedOpening(ctx, userID); cached != nil {
		live, err := s.stillActive(ctx, userID, cached.OpeningID)
		if err != nil {
			return nil, err
		}
		if live {
			return cached, nil
		}
		// Closed or deleted elsewhere since it was cached.
		s.Forget(ctx, userID)
	}

	opening, err := s.openingRepo.FindLatestActiveOpening(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve active opening: %w", err)
	}
	s.remember(ctx, *opening)
	return opening, nil
}

// stillActive reports whether a cached opening is neither soft deleted nor closed.
func (s *drawerService) stillActive(ctx context.Context, userID, openingID string) (bool, error) {
	if _, err := s.openingRepo.FindOpeningByID(ctx, userID, openingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check cached opening: %w", err)
	}
	_, err := s.closureRepo.FindClosureByOpening(ctx, userID, openingID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to check closure of cached opening: %w", err)
	}
	return false, nil
}

func (s *drawerService) ActiveOpening(ctx context.Context, userID string) (*domain.Opening, error) {
	opening, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if opening == nil {
		return nil, apperrors.ErrNoOpenDrawer
	}
	return opening, nil
}

func (s *drawerService) HasOpenDrawer(ctx context.Context, userID string) bool {
	opening, err := s.Resolve(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve drawer state", slog.String("user_id", userID))
		return false
	}
	return opening != nil
}

func (s *drawerService) Status(ctx context.Context, userID string) domain.DrawerStatus {
	opening, err := s.Resolve(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve drawer state", slog.String("user_id", userID))
		return domain.NewDrawerStatus(nil)
	}
	return domain.NewDrawerStatus(opening)
}

func (s *drawerService) Open(ctx context.Context, userID string, startingAmount decimal.Decimal) (*domain.Opening, error) {
	if startingAmount.IsNegative() {
		return nil, fmt.Errorf("%w: valor de abertura não pode ser negativo", apperrors.ErrValidation)
	}

	now, day, clock := s.Stamp()
	opening := domain.Opening{
		OpeningID:      uuid.NewString(),
		UserID:         userID,
		Date:           day,
		Time:           clock,
		StartingAmount: startingAmount.Round(2),
		AuditFields:    domain.NewAuditFields(now, userID),
	}

	if err := s.openingRepo.SaveOpening(ctx, opening); err != nil {
		if !errors.Is(err, apperrors.ErrDrawerAlreadyOpen) {
			s.LogError(ctx, err, "Failed to save opening", slog.String("user_id", userID))
		}
		return nil, err
	}
	s.remember(ctx, opening)

	s.LogInfo(ctx, "Drawer opened", slog.String("opening_id", opening.OpeningID))
	s.Track(ctx, userID, EventDrawerOpened, map[string]any{
		"opening_id":      opening.OpeningID,
		"starting_amount": opening.StartingAmount.String(),
	})
	return &opening, nil
}

func (s *drawerService) Summary(ctx context.Context, userID string) (*domain.DrawerSummary, error) {
	opening, err := s.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindSalesByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	withdrawals, err := s.withdrawalRepo.FindWithdrawalsByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawals: %w", err)
	}
	summary := domain.SummarizeDrawer(*opening, sales, withdrawals)
	return &summary, nil
}

func (s *drawerService) Forget(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate drawer cache", slog.String("user_id", userID))
	}
}

func (s *drawerService) cachedOpening(ctx context.Context, userID string) *domain.Opening {
	if s.cache == nil {
		return nil
	}
	opening, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read drawer cache", slog.String("user_id", userID))
		return nil
	}
	if !ok {
		return nil
	}
	return opening
}

func (s *drawerService) remember(ctx context.Context, opening domain.Opening) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, opening); err != nil {
		s.LogError(ctx, err, "Failed to write drawer cache", slog.String("user_id", opening.UserID))
	}
}
