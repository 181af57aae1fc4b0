package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OpeningReader defines read operations for openings.
type OpeningReader interface {
	FindOpeningByID(ctx context.Context, userID, openingID string) (*domain.Opening, error)

	// FindLatestActiveOpening returns the newest opening of the user with no live closure linked.
	// It returns apperrors.ErrNotFound when the drawer is closed.
	FindLatestActiveOpening(ctx context.Context, userID string) (*domain.Opening, error)

	// FindActiveOpeningsCreatedBefore lists active openings of every user created before the cutoff.
	FindActiveOpeningsCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Opening, error)
}

// OpeningWriter defines write operations for openings.
type OpeningWriter interface {
	// SaveOpening inserts the opening unless the user already has an active one,
	// in which case it returns apperrors.ErrDrawerAlreadyOpen.
	SaveOpening(ctx context.Context, opening domain.Opening) error
}

// OpeningTxWriter defines opening writes that join a caller's transaction.
type OpeningTxWriter interface {
	SaveOpeningTx(ctx context.Context, tx pgx.Tx, opening domain.Opening) error
	MarkOpeningDeletedTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error
}

// OpeningLocker serialises changes to the drawer state of one user inside a transaction.
type OpeningLocker interface {
	// LockUserOpeningsTx holds the per-user opening lock until tx ends.
	LockUserOpeningsTx(ctx context.Context, tx pgx.Tx, userID string) error

	// FindLatestActiveOpeningTx is FindLatestActiveOpening read through tx.
	FindLatestActiveOpeningTx(ctx context.Context, tx pgx.Tx, userID string) (*domain.Opening, error)
}

// OpeningRepositoryFacade combines all opening-related repository interfaces
type OpeningRepositoryFacade interface {
	OpeningReader
	OpeningWriter
	OpeningTxWriter
	OpeningLocker
	TransactionManager
}
