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

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const (
	selectSaleFields = `
		sale_id, user_id, opening_id, product, quantity, unit_price, total, payment_method, sale_date, sale_time,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertSaleQuery = `
		INSERT INTO sales (sale_id, user_id, opening_id, product, quantity, unit_price, total, payment_method,
			sale_date, sale_time, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
)

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.UserID,
		&m.OpeningID,
		&m.Product,
		&m.Quantity,
		&m.UnitPrice,
		&m.Total,
		&m.PaymentMethod,
		&m.SaleDate,
		&m.SaleTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func insertSaleArgs(s domain.Sale) []any {
	m := mapping.ToModelSale(s)
	return []any{
		m.SaleID, m.UserID, m.OpeningID, m.Product, m.Quantity, m.UnitPrice, m.Total, m.PaymentMethod,
		m.SaleDate, m.SaleTime, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + selectSaleFields + ` FROM sales WHERE user_id = $1 AND sale_id = $2 AND deleted_at IS NULL;`

	m, err := scanSale(r.Pool.QueryRow(ctx, query, userID, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	sale := mapping.ToDomainSale(m)
	return &sale, nil
}

func (r *PgxSaleRepository) FindSalesByOpening(ctx context.Context, userID, openingID string) ([]domain.Sale, error) {
	query := `SELECT ` + selectSaleFields + ` FROM sales
		WHERE user_id = $1 AND opening_id = $2 AND deleted_at IS NULL
		ORDER BY created_at, sale_id;`

	rows, err := r.Pool.Query(ctx, query, userID, openingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales of opening %s: %w", openingID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sale, error) {
		return scanSale(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}
	return mapping.ToDomainSaleSlice(ms), nil
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	if _, err := r.Pool.Exec(ctx, insertSaleQuery, insertSaleArgs(sale)...); err != nil {
		return translatePgError(err, "sale "+sale.SaleID)
	}
	return nil
}

func (r *PgxSaleRepository) SaveSalesTx(ctx context.Context, tx pgx.Tx, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range sales {
		batch.Queue(insertSaleQuery, insertSaleArgs(s)...)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, s := range sales {
		if _, err := br.Exec(); err != nil {
			return translatePgError(err, "sale "+s.SaleID)
		}
	}
	return nil
}

func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		UPDATE sales
		SET product = $1, quantity = $2, unit_price = $3, total = $4, payment_method = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE sale_id = $8 AND user_id = $9 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Product,
		m.Quantity,
		m.UnitPrice,
		m.Total,
		m.PaymentMethod,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SaleID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s not found or already deleted: %w", m.SaleID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSaleRepository) MarkSaleDeleted(ctx context.Context, userID, saleID string, deletedAt time.Time) error {
	query := `
		UPDATE sales
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE sale_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, userID, saleID)
	if err != nil {
		return fmt.Errorf("failed to mark sale %s as deleted: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s not found or already deleted: %w", saleID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSaleRepository) MarkSalesDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	query := `
		UPDATE sales
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE opening_id = $3 AND user_id = $2 AND deleted_at IS NULL;
	`
	if _, err := tx.Exec(ctx, query, deletedAt, userID, openingID); err != nil {
		return fmt.Errorf("failed to mark sales of opening %s as deleted: %w", openingID, err)
	}
	return nil
}

func (r *PgxSaleRepository) PurgeDeletedSales(ctx context.Context, deletedBefore time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM sales WHERE deleted_at IS NOT NULL AND deleted_at < $1;`, deletedBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to purge deleted sales: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
