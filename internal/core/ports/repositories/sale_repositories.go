package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SaleReader defines read operations for sales.
type SaleReader interface {
	FindSaleByID(ctx context.Context, userID, saleID string) (*domain.Sale, error)

	// FindSalesByOpening lists the live sales of an opening, oldest first.
	FindSalesByOpening(ctx context.Context, userID, openingID string) ([]domain.Sale, error)
}

// SaleWriter defines write operations for sales.
type SaleWriter interface {
	SaveSale(ctx context.Context, sale domain.Sale) error
	UpdateSale(ctx context.Context, sale domain.Sale) error
	MarkSaleDeleted(ctx context.Context, userID, saleID string, deletedAt time.Time) error
}

// SaleTxWriter defines sale writes that join a caller's transaction.
type SaleTxWriter interface {
	SaveSalesTx(ctx context.Context, tx pgx.Tx, sales []domain.Sale) error
	MarkSalesDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error
}

// SalePurger removes soft-deleted sales for good.
type SalePurger interface {
	PurgeDeletedSales(ctx context.Context, deletedBefore time.Time) (int64, error)
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
	SaleTxWriter
	SalePurger
}
