package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// ClosureListFilter narrows a history listing. From is inclusive, To exclusive.
type ClosureListFilter struct {
	From  *time.Time
	To    *time.Time
	After *pagination.ClosureCursor
	Limit int
}

// ClosureReader defines read operations for closures.
type ClosureReader interface {
	FindClosureByID(ctx context.Context, userID, closureID string) (*domain.Closure, error)

	// FindClosureByOpening returns the live closure linked to an opening or apperrors.ErrNotFound.
	FindClosureByOpening(ctx context.Context, userID, openingID string) (*domain.Closure, error)

	// ListClosures returns live closures newest first.
	ListClosures(ctx context.Context, userID string, filter ClosureListFilter) ([]domain.Closure, error)

	// CountClosuresByMonth groups live closures by calendar month, newest first.
	CountClosuresByMonth(ctx context.Context, userID string) ([]domain.ClosureMonth, error)
}

// ClosureWriter defines write operations for closures.
type ClosureWriter interface {
	// UpsertClosure inserts the closure or, when the id exists, rewrites it and clears its deletion.
	UpsertClosure(ctx context.Context, closure domain.Closure) error
}

// ClosureTxWriter defines closure writes that join a caller's transaction.
type ClosureTxWriter interface {
	MarkClosureDeletedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error

	// MarkClosureReopenedTx flags the closure as reopened and soft deletes it.
	MarkClosureReopenedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error
}

// ClosureRepositoryFacade combines all closure-related repository interfaces
type ClosureRepositoryFacade interface {
	ClosureReader
	ClosureWriter
	ClosureTxWriter
}
