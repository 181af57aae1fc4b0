package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/google/uuid"
)

type withdrawalService struct {
	BaseService
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	drawer         portssvc.DrawerStateResolver
}

func NewWithdrawalService(withdrawalRepo portsrepo.WithdrawalRepositoryFacade, drawer portssvc.DrawerStateResolver, opts ...ServiceOption) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{BaseService: newBaseService(opts), withdrawalRepo: withdrawalRepo, drawer: drawer}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

func (s *withdrawalService) CreateWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	description := utils.SanitizeString(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: descrição é obrigatória", apperrors.ErrValidation)
	}
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: valor deve ser maior que zero", apperrors.ErrValidation)
	}

	opening, err := s.drawer.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}

	now, day, clock := s.Stamp()
	withdrawal := domain.Withdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       userID,
		OpeningID:    opening.OpeningID,
		Description:  description,
		Amount:       req.Amount.Round(2),
		Date:         day,
		Time:         clock,
		AuditFields:  domain.NewAuditFields(now, userID),
	}
	if err := s.withdrawalRepo.SaveWithdrawal(ctx, withdrawal); err != nil {
		s.LogError(ctx, err, "Failed to save withdrawal", slog.String("opening_id", opening.OpeningID))
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return &withdrawal, nil
}

func (s *withdrawalService) ListCurrentWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	opening, err := s.drawer.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if opening == nil {
		return []domain.Withdrawal{}, nil
	}
	withdrawals, err := s.withdrawalRepo.FindWithdrawalsByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}

func (s *withdrawalService) UpdateWithdrawal(ctx context.Context, userID, withdrawalID string, req dto.UpdateWithdrawalRequest) (*domain.Withdrawal, error) {
	withdrawal, err := s.editableWithdrawal(ctx, userID, withdrawalID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		description := utils.SanitizeString(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: descrição é obrigatória", apperrors.ErrValidation)
		}
		withdrawal.Description = description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: valor deve ser maior que zero", apperrors.ErrValidation)
		}
		withdrawal.Amount = req.Amount.Round(2)
	}
	withdrawal.Touch(s.Now(), userID)

	if err := s.withdrawalRepo.UpdateWithdrawal(ctx, *withdrawal); err != nil {
		return nil, fmt.Errorf("failed to update withdrawal: %w", err)
	}
	return withdrawal, nil
}

func (s *withdrawalService) DeleteWithdrawal(ctx context.Context, userID, withdrawalID string) error {
	if _, err := s.editableWithdrawal(ctx, userID, withdrawalID); err != nil {
		return err
	}
	if err := s.withdrawalRepo.MarkWithdrawalDeleted(ctx, userID, withdrawalID, s.Now()); err != nil {
		return fmt.Errorf("failed to delete withdrawal: %w", err)
	}
	return nil
}

// editableWithdrawal loads a withdrawal and checks it belongs to the open drawer.
func (s *withdrawalService) editableWithdrawal(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, userID, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find withdrawal: %w", err)
	}
	opening, err := s.drawer.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}
	if withdrawal.OpeningID != opening.OpeningID {
		return nil, fmt.Errorf("%w: só é possível alterar retiradas do caixa aberto", apperrors.ErrConflict)
	}
	return withdrawal, nil
}
