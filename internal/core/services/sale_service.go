package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/google/uuid"
)

type saleService struct {
	BaseService
	saleRepo portsrepo.SaleRepositoryFacade
	drawer   portssvc.DrawerStateResolver
}

func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, drawer portssvc.DrawerStateResolver, opts ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{BaseService: newBaseService(opts), saleRepo: saleRepo, drawer: drawer}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) CreateSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*domain.Sale, error) {
	product := utils.SanitizeString(req.Product)
	if product == "" {
		return nil, fmt.Errorf("%w: produto é obrigatório", apperrors.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser maior que zero", apperrors.ErrValidation)
	}
	if req.UnitPrice == nil || !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: preço unitário deve ser maior que zero", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: forma de pagamento inválida", apperrors.ErrValidation)
	}

	opening, err := s.drawer.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}

	now, day, clock := s.Stamp()
	unitPrice := req.UnitPrice.Round(2)
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		UserID:        userID,
		OpeningID:     opening.OpeningID,
		Product:       product,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		Total:         domain.SaleTotal(req.Quantity, unitPrice),
		PaymentMethod: req.PaymentMethod,
		Date:          day,
		Time:          clock,
		AuditFields:   domain.NewAuditFields(now, userID),
	}
	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		s.LogError(ctx, err, "Failed to save sale", slog.String("opening_id", opening.OpeningID))
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	s.LogDebug(ctx, "Sale recorded", slog.String("sale_id", sale.SaleID))
	return &sale, nil
}

func (s *saleService) ListCurrentSales(ctx context.Context, userID string) ([]domain.Sale, error) {
	opening, err := s.drawer.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if opening == nil {
		return []domain.Sale{}, nil
	}
	sales, err := s.saleRepo.FindSalesByOpening(ctx, userID, opening.OpeningID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *saleService) UpdateSale(ctx context.Context, userID, saleID string, req dto.UpdateSaleRequest) (*domain.Sale, error) {
	sale, err := s.editableSale(ctx, userID, saleID)
	if err != nil {
		return nil, err
	}

	if req.Product != nil {
		product := utils.SanitizeString(*req.Product)
		if product == "" {
			return nil, fmt.Errorf("%w: produto é obrigatório", apperrors.ErrValidation)
		}
		sale.Product = product
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantidade deve ser maior que zero", apperrors.ErrValidation)
		}
		sale.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if !req.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: preço unitário deve ser maior que zero", apperrors.ErrValidation)
		}
		sale.UnitPrice = req.UnitPrice.Round(2)
	}
	if req.PaymentMethod != nil {
		if !req.PaymentMethod.IsValid() {
			return nil, fmt.Errorf("%w: forma de pagamento inválida", apperrors.ErrValidation)
		}
		sale.PaymentMethod = *req.PaymentMethod
	}
	sale.Total = domain.SaleTotal(sale.Quantity, sale.UnitPrice)
	sale.Touch(s.Now(), userID)

	if err := s.saleRepo.UpdateSale(ctx, *sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sale, nil
}

func (s *saleService) DeleteSale(ctx context.Context, userID, saleID string) error {
	if _, err := s.editableSale(ctx, userID, saleID); err != nil {
		return err
	}
	if err := s.saleRepo.MarkSaleDeleted(ctx, userID, saleID, s.Now()); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

// editableSale loads a sale and checks it belongs to the open drawer.
func (s *saleService) editableSale(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, userID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	opening, err := s.drawer.ActiveOpening(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sale.OpeningID != opening.OpeningID {
		return nil, fmt.Errorf("%w: só é possível alterar vendas do caixa aberto", apperrors.ErrConflict)
	}
	return sale, nil
}
