package repositories

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
)

// DrawerCache remembers the active opening of each user between requests.
// The database stays the source of truth; a cached entry is only a hint.
type DrawerCache interface {
	// Get returns the cached opening and whether there was one.
	Get(ctx context.Context, userID string) (*domain.Opening, bool, error)
	Set(ctx context.Context, opening domain.Opening) error
	Invalidate(ctx context.Context, userID string) error
}
