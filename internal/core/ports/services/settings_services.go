package services

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/dto"
)

// SettingsSvcFacade manages per-user settings.
type SettingsSvcFacade interface {
	// GetSettings returns stored settings or the defaults.
	GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.UserSettings, error)
}
