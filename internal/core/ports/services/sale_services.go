package services

import (
	"context"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/dto"
)

// SaleSvcFacade manages the sales of the active opening.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*domain.Sale, error)
	// ListCurrentSales returns the active opening's sales, or an empty list when the drawer is closed.
	ListCurrentSales(ctx context.Context, userID string) ([]domain.Sale, error)
	UpdateSale(ctx context.Context, userID, saleID string, req dto.UpdateSaleRequest) (*domain.Sale, error)
	DeleteSale(ctx context.Context, userID, saleID string) error
}
