package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/utils"
)

const maxCompanyNameLength = 100

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade, opts ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{BaseService: newBaseService(opts), settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultUserSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.UserSettings, error) {
	name := utils.SanitizeString(req.CompanyName)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxCompanyNameLength {
		return nil, fmt.Errorf("%w: nome da empresa deve ter entre 1 e %d caracteres", apperrors.ErrValidation, maxCompanyNameLength)
	}

	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	updated := *current
	updated.CompanyName = name
	updated.UpdatedAt = now
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = now
	}

	if err := s.settingsRepo.UpsertSettings(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &updated, nil
}
