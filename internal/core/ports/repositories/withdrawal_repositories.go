package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WithdrawalReader defines read operations for withdrawals.
type WithdrawalReader interface {
	FindWithdrawalByID(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error)

	// FindWithdrawalsByOpening lists the live withdrawals of an opening, oldest first.
	FindWithdrawalsByOpening(ctx context.Context, userID, openingID string) ([]domain.Withdrawal, error)
}

// WithdrawalWriter defines write operations for withdrawals.
type WithdrawalWriter interface {
	SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error
	UpdateWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error
	MarkWithdrawalDeleted(ctx context.Context, userID, withdrawalID string, deletedAt time.Time) error
}

// WithdrawalTxWriter defines withdrawal writes that join a caller's transaction.
type WithdrawalTxWriter interface {
	SaveWithdrawalsTx(ctx context.Context, tx pgx.Tx, withdrawals []domain.Withdrawal) error
	MarkWithdrawalsDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error
}

// WithdrawalPurger removes soft-deleted withdrawals for good.
type WithdrawalPurger interface {
	PurgeDeletedWithdrawals(ctx context.Context, deletedBefore time.Time) (int64, error)
}

// WithdrawalRepositoryFacade combines all withdrawal-related repository interfaces
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
	WithdrawalTxWriter
	WithdrawalPurger
}
