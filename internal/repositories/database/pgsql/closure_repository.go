package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/SscSPs/livro_caixa/internal/models"
	"github.com/SscSPs/livro_caixa/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClosureRepository struct {
	BaseRepository
}

func newPgxClosureRepository(pool *pgxpool.Pool) portsrepo.ClosureRepositoryFacade {
	return &PgxClosureRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosureRepositoryFacade = (*PgxClosureRepository)(nil)

const (
	selectClosureFields = `
		closure_id, user_id, opening_id, closure_date, closure_time,
		total_sales, total_withdrawals, starting_amount, counted_amount, expected_balance, difference,
		sales, withdrawals, cash_breakdown, status,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	defaultClosurePageSize = 20
)

func scanClosure(row pgx.Row) (domain.Closure, error) {
	var m models.Closure
	err := row.Scan(
		&m.ClosureID,
		&m.UserID,
		&m.OpeningID,
		&m.ClosureDate,
		&m.ClosureTime,
		&m.TotalSales,
		&m.TotalWithdrawals,
		&m.StartingAmount,
		&m.CountedAmount,
		&m.ExpectedBalance,
		&m.Difference,
		&m.Sales,
		&m.Withdrawals,
		&m.CashBreakdown,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.Closure{}, err
	}
	return mapping.ToDomainClosure(m)
}

func (r *PgxClosureRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Closure, error) {
	query := `SELECT ` + selectClosureFields + ` FROM closures WHERE ` + where + ` AND deleted_at IS NULL;`

	c, err := scanClosure(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closure: %w", err)
	}
	return &c, nil
}

func (r *PgxClosureRepository) FindClosureByID(ctx context.Context, userID, closureID string) (*domain.Closure, error) {
	return r.findOne(ctx, "user_id = $1 AND closure_id = $2", userID, closureID)
}

func (r *PgxClosureRepository) FindClosureByOpening(ctx context.Context, userID, openingID string) (*domain.Closure, error) {
	return r.findOne(ctx, "user_id = $1 AND opening_id = $2", userID, openingID)
}

func (r *PgxClosureRepository) ListClosures(ctx context.Context, userID string, filter portsrepo.ClosureListFilter) ([]domain.Closure, error) {
	conditions := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		conditions = append(conditions, "closure_date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "closure_date < "+arg(*filter.To))
	}
	if filter.After != nil {
		conditions = append(conditions, fmt.Sprintf("(closure_date, created_at, closure_id) < (%s, %s, %s)",
			arg(filter.After.ClosureDate), arg(filter.After.CreatedAt), arg(filter.After.ClosureID)))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultClosurePageSize
	}

	query := `SELECT ` + selectClosureFields + ` FROM closures
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY closure_date DESC, created_at DESC, closure_id DESC
		LIMIT ` + arg(limit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query closures: %w", err)
	}
	defer rows.Close()

	closures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Closure, error) {
		return scanClosure(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan closures: %w", err)
	}
	return closures, nil
}

func (r *PgxClosureRepository) CountClosuresByMonth(ctx context.Context, userID string) ([]domain.ClosureMonth, error) {
	query := `
		SELECT EXTRACT(YEAR FROM closure_date)::int AS year, EXTRACT(MONTH FROM closure_date)::int AS month, COUNT(*)::int
		FROM closures
		WHERE user_id = $1 AND deleted_at IS NULL
		GROUP BY 1, 2
		ORDER BY 1 DESC, 2 DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count closures by month: %w", err)
	}
	defer rows.Close()

	months, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ClosureMonth, error) {
		var m domain.ClosureMonth
		var month int
		err := row.Scan(&m.Year, &month, &m.Count)
		m.Month = time.Month(month)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan closure months: %w", err)
	}
	return months, nil
}

func (r *PgxClosureRepository) UpsertClosure(ctx context.Context, closure domain.Closure) error {
	m, err := mapping.ToModelClosure(closure)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO closures (closure_id, user_id, opening_id, closure_date, closure_time,
			total_sales, total_withdrawals, starting_amount, counted_amount, expected_balance, difference,
			sales, withdrawals, cash_breakdown, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (closure_id) DO UPDATE SET
			opening_id = EXCLUDED.opening_id,
			closure_date = EXCLUDED.closure_date,
			closure_time = EXCLUDED.closure_time,
			total_sales = EXCLUDED.total_sales,
			total_withdrawals = EXCLUDED.total_withdrawals,
			starting_amount = EXCLUDED.starting_amount,
			counted_amount = EXCLUDED.counted_amount,
			expected_balance = EXCLUDED.expected_balance,
			difference = EXCLUDED.difference,
			sales = EXCLUDED.sales,
			withdrawals = EXCLUDED.withdrawals,
			cash_breakdown = EXCLUDED.cash_breakdown,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by,
			deleted_at = NULL
		WHERE closures.user_id = EXCLUDED.user_id;
	`
	// JSONB columns take the encoded documents as strings.
	var breakdown any
	if m.CashBreakdown != nil {
		breakdown = string(m.CashBreakdown)
	}
	_, err = r.Pool.Exec(ctx, query,
		m.ClosureID,
		m.UserID,
		m.OpeningID,
		m.ClosureDate,
		m.ClosureTime,
		m.TotalSales,
		m.TotalWithdrawals,
		m.StartingAmount,
		m.CountedAmount,
		m.ExpectedBalance,
		m.Difference,
		string(m.Sales),
		string(m.Withdrawals),
		breakdown,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "closure for this opening")
	}
	return nil
}

func (r *PgxClosureRepository) MarkClosureDeletedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error {
	return r.markDeleted(ctx, tx, userID, closureID, deletedAt, nil)
}

func (r *PgxClosureRepository) MarkClosureReopenedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error {
	status := domain.ClosureReopened
	return r.markDeleted(ctx, tx, userID, closureID, deletedAt, &status)
}

func (r *PgxClosureRepository) markDeleted(ctx context.Context, db dbExecutor, userID, closureID string, deletedAt time.Time, status *domain.ClosureStatus) error {
	query := `
		UPDATE closures
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2, status = COALESCE($4, status)
		WHERE closure_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	var statusArg any
	if status != nil {
		statusArg = string(*status)
	}
	cmdTag, err := db.Exec(ctx, query, deletedAt, userID, closureID, statusArg)
	if err != nil {
		return fmt.Errorf("failed to mark closure %s as deleted: %w", closureID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("closure %s not found or already deleted: %w", closureID, apperrors.ErrNotFound)
	}
	return nil
}
