package services

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DrawerStateResolver decides whether the user has an open drawer.
type DrawerStateResolver interface {
	// Resolve returns the active opening or nil when the drawer is closed.
	Resolve(ctx context.Context, userID string) (*domain.Opening, error)

	// ActiveOpening is Resolve that fails with apperrors.ErrNoOpenDrawer when closed.
	ActiveOpening(ctx context.Context, userID string) (*domain.Opening, error)

	// HasOpenDrawer reports whether a drawer is open; lookup errors count as closed.
	HasOpenDrawer(ctx context.Context, userID string) bool

	// Status is the drawer state together with the screens a client may show.
	Status(ctx context.Context, userID string) domain.DrawerStatus
}

// DrawerSvcFacade combines the resolver with drawer lifecycle operations.
type DrawerSvcFacade interface {
	DrawerStateResolver

	// Open starts a new session with the given starting cash.
	Open(ctx context.Context, userID string, startingAmount decimal.Decimal) (*domain.Opening, error)

	// Summary is the running position of the active opening.
	Summary(ctx context.Context, userID string) (*domain.DrawerSummary, error)

	// Forget drops any cached drawer state of the user.
	Forget(ctx context.Context, userID string)
}
