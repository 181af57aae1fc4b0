package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/SscSPs/livro_caixa/internal/models"
	"github.com/SscSPs/livro_caixa/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	query := `SELECT user_id, company_name, created_at, updated_at FROM user_settings WHERE user_id = $1;`

	var m models.UserSettings
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.CompanyName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings of user %s: %w", userID, err)
	}
	settings := mapping.ToDomainUserSettings(m)
	return &settings, nil
}

func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, settings domain.UserSettings) error {
	m := mapping.ToModelUserSettings(settings)
	query := `
		INSERT INTO user_settings (user_id, company_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, m.UserID, m.CompanyName, m.CreatedAt, m.UpdatedAt); err != nil {
		return translatePgError(err, "settings of user "+m.UserID)
	}
	return nil
}
