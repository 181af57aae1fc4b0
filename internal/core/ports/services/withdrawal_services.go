package services

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/dto"
)

// WithdrawalSvcFacade manages the withdrawals of the active opening.
type WithdrawalSvcFacade interface {
	CreateWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error)
	ListCurrentWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	UpdateWithdrawal(ctx context.Context, userID, withdrawalID string, req dto.UpdateWithdrawalRequest) (*domain.Withdrawal, error)
	DeleteWithdrawal(ctx context.Context, userID, withdrawalID string) error
}
