package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/SscSPs/livro_caixa/internal/models"
	"github.com/SscSPs/livro_caixa/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOpeningRepository struct {
	BaseRepository
}

func newPgxOpeningRepository(pool *pgxpool.Pool) portsrepo.OpeningRepositoryFacade {
	return &PgxOpeningRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OpeningRepositoryFacade = (*PgxOpeningRepository)(nil)

const (
	selectOpeningFields = `
		o.opening_id, o.user_id, o.opening_date, o.opening_time, o.starting_amount, o.origin_closure_id,
		o.created_at, o.created_by, o.last_updated_at, o.last_updated_by, o.deleted_at`

	// activeOpeningCondition keeps live openings that no live closure points at.
	activeOpeningCondition = `
		o.deleted_at IS NULL
		AND NOT EXISTS (
			SELECT 1 FROM closures c
			WHERE c.opening_id = o.opening_id AND c.deleted_at IS NULL
		)`
)

func scanOpening(row pgx.Row) (models.Opening, error) {
	var m models.Opening
	err := row.Scan(
		&m.OpeningID,
		&m.UserID,
		&m.OpeningDate,
		&m.OpeningTime,
		&m.StartingAmount,
		&m.OriginClosureID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxOpeningRepository) FindOpeningByID(ctx context.Context, userID, openingID string) (*domain.Opening, error) {
	query := `SELECT ` + selectOpeningFields + ` FROM openings o
		WHERE o.user_id = $1 AND o.opening_id = $2 AND o.deleted_at IS NULL;`

	m, err := scanOpening(r.Pool.QueryRow(ctx, query, userID, openingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find opening %s: %w", openingID, err)
	}
	opening := mapping.ToDomainOpening(m)
	return &opening, nil
}

func (r *PgxOpeningRepository) FindLatestActiveOpening(ctx context.Context, userID string) (*domain.Opening, error) {
	return r.findLatestActive(ctx, r.Pool, userID)
}

func (r *PgxOpeningRepository) findLatestActive(ctx context.Context, db dbExecutor, userID string) (*domain.Opening, error) {
	query := `SELECT ` + selectOpeningFields + ` FROM openings o
		WHERE o.user_id = $1 AND ` + activeOpeningCondition + `
		ORDER BY o.opening_date DESC, o.created_at DESC
		LIMIT 1;`

	m, err := scanOpening(db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active opening for user %s: %w", userID, err)
	}
	opening := mapping.ToDomainOpening(m)
	return &opening, nil
}

func (r *PgxOpeningRepository) FindActiveOpeningsCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Opening, error) {
	query := `SELECT ` + selectOpeningFields + ` FROM openings o
		WHERE o.created_at < $1 AND ` + activeOpeningCondition + `
		ORDER BY o.created_at;`

	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale openings: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Opening, error) {
		return scanOpening(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stale openings: %w", err)
	}

	openings := make([]domain.Opening, len(ms))
	for i, m := range ms {
		openings[i] = mapping.ToDomainOpening(m)
	}
	return openings, nil
}

func (r *PgxOpeningRepository) FindLatestActiveOpeningTx(ctx context.Context, tx pgx.Tx, userID string) (*domain.Opening, error) {
	return r.findLatestActive(ctx, tx, userID)
}

func (r *PgxOpeningRepository) LockUserOpeningsTx(ctx context.Context, tx pgx.Tx, userID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, userID); err != nil {
		return fmt.Errorf("failed to lock openings of user %s: %w", userID, err)
	}
	return nil
}

// SaveOpening serialises openings per user with an advisory lock so two
// concurrent requests cannot both see a closed drawer and insert.
func (r *PgxOpeningRepository) SaveOpening(ctx context.Context, opening domain.Opening) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if err = r.LockUserOpeningsTx(ctx, tx, opening.UserID); err != nil {
		return err
	}

	_, findErr := r.findLatestActive(ctx, tx, opening.UserID)
	switch {
	case findErr == nil:
		err = apperrors.ErrDrawerAlreadyOpen
		return err
	case !errors.Is(findErr, apperrors.ErrNotFound):
		err = findErr
		return err
	}

	if err = r.insertOpening(ctx, tx, opening); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxOpeningRepository) SaveOpeningTx(ctx context.Context, tx pgx.Tx, opening domain.Opening) error {
	return r.insertOpening(ctx, tx, opening)
}

func (r *PgxOpeningRepository) insertOpening(ctx context.Context, db dbExecutor, opening domain.Opening) error {
	m := mapping.ToModelOpening(opening)
	query := `
		INSERT INTO openings (opening_id, user_id, opening_date, opening_time, starting_amount, origin_closure_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := db.Exec(ctx, query,
		m.OpeningID,
		m.UserID,
		m.OpeningDate,
		m.OpeningTime,
		m.StartingAmount,
		m.OriginClosureID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "opening "+m.OpeningID)
	}
	return nil
}

func (r *PgxOpeningRepository) MarkOpeningDeletedTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	query := `
		UPDATE openings
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE opening_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, deletedAt, userID, openingID)
	if err != nil {
		return fmt.Errorf("failed to mark opening %s as deleted: %w", openingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("opening %s not found or already deleted: %w", openingID, apperrors.ErrNotFound)
	}
	return nil
}
