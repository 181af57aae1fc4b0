package repositories

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
)

// SettingsRepositoryFacade persists per-user settings.
type SettingsRepositoryFacade interface {
	// FindSettings returns apperrors.ErrNotFound when the user never saved settings.
	FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error)
	UpsertSettings(ctx context.Context, settings domain.UserSettings) error
}
