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

type PgxWithdrawalRepository struct {
	BaseRepository
}

func newPgxWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WithdrawalRepositoryFacade = (*PgxWithdrawalRepository)(nil)

const (
	selectWithdrawalFields = `
		withdrawal_id, user_id, opening_id, description, amount, withdrawal_date, withdrawal_time,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertWithdrawalQuery = `
		INSERT INTO withdrawals (withdrawal_id, user_id, opening_id, description, amount, withdrawal_date,
			withdrawal_time, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
)

func scanWithdrawal(row pgx.Row) (models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(
		&m.WithdrawalID,
		&m.UserID,
		&m.OpeningID,
		&m.Description,
		&m.Amount,
		&m.WithdrawalDate,
		&m.WithdrawalTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func insertWithdrawalArgs(w domain.Withdrawal) []any {
	m := mapping.ToModelWithdrawal(w)
	return []any{
		m.WithdrawalID, m.UserID, m.OpeningID, m.Description, m.Amount, m.WithdrawalDate,
		m.WithdrawalTime, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalFields + ` FROM withdrawals
		WHERE user_id = $1 AND withdrawal_id = $2 AND deleted_at IS NULL;`

	m, err := scanWithdrawal(r.Pool.QueryRow(ctx, query, userID, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	withdrawal := mapping.ToDomainWithdrawal(m)
	return &withdrawal, nil
}

func (r *PgxWithdrawalRepository) FindWithdrawalsByOpening(ctx context.Context, userID, openingID string) ([]domain.Withdrawal, error) {
	query := `SELECT ` + selectWithdrawalFields + ` FROM withdrawals
		WHERE user_id = $1 AND opening_id = $2 AND deleted_at IS NULL
		ORDER BY created_at, withdrawal_id;`

	rows, err := r.Pool.Query(ctx, query, userID, openingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals of opening %s: %w", openingID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Withdrawal, error) {
		return scanWithdrawal(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawals: %w", err)
	}
	return mapping.ToDomainWithdrawalSlice(ms), nil
}

func (r *PgxWithdrawalRepository) SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	if _, err := r.Pool.Exec(ctx, insertWithdrawalQuery, insertWithdrawalArgs(withdrawal)...); err != nil {
		return translatePgError(err, "withdrawal "+withdrawal.WithdrawalID)
	}
	return nil
}

func (r *PgxWithdrawalRepository) SaveWithdrawalsTx(ctx context.Context, tx pgx.Tx, withdrawals []domain.Withdrawal) error {
	if len(withdrawals) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, w := range withdrawals {
		batch.Queue(insertWithdrawalQuery, insertWithdrawalArgs(w)...)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, w := range withdrawals {
		if _, err := br.Exec(); err != nil {
			return translatePgError(err, "withdrawal "+w.WithdrawalID)
		}
	}
	return nil
}

func (r *PgxWithdrawalRepository) UpdateWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		UPDATE withdrawals
		SET description = $1, amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE withdrawal_id = $5 AND user_id = $6 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Description,
		m.Amount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.WithdrawalID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal %s: %w", m.WithdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal %s not found or already deleted: %w", m.WithdrawalID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWithdrawalRepository) MarkWithdrawalDeleted(ctx context.Context, userID, withdrawalID string, deletedAt time.Time) error {
	query := `
		UPDATE withdrawals
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE withdrawal_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, userID, withdrawalID)
	if err != nil {
		return fmt.Errorf("failed to mark withdrawal %s as deleted: %w", withdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal %s not found or already deleted: %w", withdrawalID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxWithdrawalRepository) MarkWithdrawalsDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	query := `
		UPDATE withdrawals
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE opening_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	if _, err := tx.Exec(ctx, query, deletedAt, userID, openingID); err != nil {
		return fmt.Errorf("failed to mark withdrawals of opening %s as deleted: %w", openingID, err)
	}
	return nil
}

func (r *PgxWithdrawalRepository) PurgeDeletedWithdrawals(ctx context.Context, deletedBefore time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM withdrawals WHERE deleted_at IS NOT NULL AND deleted_at < $1;`, deletedBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted withdrawals: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
