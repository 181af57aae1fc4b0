package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/core/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type SaleServiceTestSuite struct {
	suite.Suite
	saleRepo *MockSaleRepository
	drawer   *MockDrawerService
	now      time.Time
	opening  *domain.Opening
	service  portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.saleRepo = new(MockSaleRepository)
	suite.drawer = new(MockDrawerService)
	suite.now = time.Date(2024, 5, 10, 15, 45, 0, 0, time.UTC)
	suite.opening = &domain.Opening{OpeningID: "op-1", UserID: "user-1"}
	suite.service = services.NewSaleService(suite.saleRepo, suite.drawer,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithLocation(saoPaulo),
	)
}

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{Product: "  Pão   francês ", Quantity: 3, UnitPrice: decPtr("1.25"), PaymentMethod: domain.PaymentPix}

	suite.drawer.On("ActiveOpening", ctx, "user-1").Return(suite.opening, nil).Once()
	suite.saleRepo.On("SaveSale", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.OpeningID == "op-1" && s.Total.Equal(decimal.RequireFromString("3.75")) && s.Time == "12:45"
	})).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal("Pão francês", sale.Product)
	suite.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), sale.Date)
	suite.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_Validation() {
	ctx := context.Background()
	tests := []struct {
		name string
		req  dto.CreateSaleRequest
	}{
		{"empty product", dto.CreateSaleRequest{Product: "   ", Quantity: 1, UnitPrice: decPtr("1"), PaymentMethod: domain.PaymentPix}},
		{"zero quantity", dto.CreateSaleRequest{Product: "Café", Quantity: 0, UnitPrice: decPtr("1"), PaymentMethod: domain.PaymentPix}},
		{"missing price", dto.CreateSaleRequest{Product: "Café", Quantity: 1, PaymentMethod: domain.PaymentPix}},
		{"zero price", dto.CreateSaleRequest{Product: "Café", Quantity: 1, UnitPrice: decPtr("0"), PaymentMethod: domain.PaymentPix}},
		{"bad method", dto.CreateSaleRequest{Product: "Café", Quantity: 1, UnitPrice: decPtr("1"), PaymentMethod: "Boleto"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateSale(ctx, "user-1", tt.req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.drawer.AssertNotCalled(suite.T(), "ActiveOpening", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_NoOpenDrawer() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{Product: "Café", Quantity: 1, UnitPrice: decPtr("5"), PaymentMethod: domain.PaymentCash}

	suite.drawer.On("ActiveOpening", ctx, "user-1").Return(nil, apperrors.ErrNoOpenDrawer).Once()

	_, err := suite.service.CreateSale(ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrNoOpenDrawer)
	suite.saleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestListCurrentSales_ClosedDrawer() {
	ctx := context.Background()

	suite.drawer.On("Resolve", ctx, "user-1").Return(nil, nil).Once()

	sales, err := suite.service.ListCurrentSales(ctx, "user-1")

	suite.Require().NoError(err)
	suite.NotNil(sales)
	suite.Empty(sales)
}

func (suite *SaleServiceTestSuite) TestUpdateSale_RecomputesTotal() {
	ctx := context.Background()
	stored := &domain.Sale{SaleID: "s1", OpeningID: "op-1", Product: "Café", Quantity: 1, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(5), PaymentMethod: domain.PaymentCash}
	qty := 4

	suite.saleRepo.On("FindSaleByID", ctx, "user-1", "s1").Return(stored, nil).Once()
	suite.drawer.On("ActiveOpening", ctx, "user-1").Return(suite.opening, nil).Once()
	suite.saleRepo.On("UpdateSale", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.Quantity == 4 && s.Total.Equal(decimal.NewFromInt(20)) && s.LastUpdatedBy == "user-1"
	})).Return(nil).Once()

	sale, err := suite.service.UpdateSale(ctx, "user-1", "s1", dto.UpdateSaleRequest{Quantity: &qty})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(20).Equal(sale.Total))
	suite.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestUpdateSale_FromClosedSession() {
	ctx := context.Background()
	stored := &domain.Sale{SaleID: "s1", OpeningID: "op-old"}
	qty := 2

	suite.saleRepo.On("FindSaleByID", ctx, "user-1", "s1").Return(stored, nil).Once()
	suite.drawer.On("ActiveOpening", ctx, "user-1").Return(suite.opening, nil).Once()

	_, err := suite.service.UpdateSale(ctx, "user-1", "s1", dto.UpdateSaleRequest{Quantity: &qty})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.saleRepo.AssertNotCalled(suite.T(), "UpdateSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeleteSale() {
	ctx := context.Background()

	suite.saleRepo.On("FindSaleByID", ctx, "user-1", "s1").Return(&domain.Sale{SaleID: "s1", OpeningID: "op-1"}, nil).Once()
	suite.drawer.On("ActiveOpening", ctx, "user-1").Return(suite.opening, nil).Once()
	suite.saleRepo.On("MarkSaleDeleted", ctx, "user-1", "s1", suite.now).Return(nil).Once()
	suite.saleRepo.On("FindSaleByID", ctx, "user-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeleteSale(ctx, "user-1", "s1"))
	suite.ErrorIs(suite.service.DeleteSale(ctx, "user-1", "missing"), apperrors.ErrNotFound)
	suite.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_FromClosedSession() {
	ctx := context.Background()

	tests := []struct {
		name    string
		active  *domain.Opening
		openErr error
		wantErr error
	}{
		{"drawer closed", nil, apperrors.ErrNoOpenDrawer, apperrors.ErrNoOpenDrawer},
		{"other session open", suite.opening, nil, apperrors.ErrConflict},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			saleRepo := new(MockSaleRepository)
			drawer := new(MockDrawerService)
			svc := services.NewSaleService(saleRepo, drawer, services.WithClock(func() time.Time { return suite.now }))

			saleRepo.On("FindSaleByID", ctx, "user-1", "s-old").Return(&domain.Sale{SaleID: "s-old", OpeningID: "op-closed"}, nil).Once()
			drawer.On("ActiveOpening", ctx, "user-1").Return(tt.active, tt.openErr).Once()

			err := svc.DeleteSale(ctx, "user-1", "s-old")

			suite.ErrorIs(err, tt.wantErr)
			saleRepo.AssertNotCalled(suite.T(), "MarkSaleDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func TestWithdrawalService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	opening := &domain.Opening{OpeningID: "op-1", UserID: "user-1"}

	t.Run("create", func(t *testing.T) {
		repo := new(MockWithdrawalRepository)
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(repo, drawer, services.WithClock(func() time.Time { return now }))

		drawer.On("ActiveOpening", ctx, "user-1").Return(opening, nil).Once()
		repo.On("SaveWithdrawal", ctx, mock.MatchedBy(func(w domain.Withdrawal) bool {
			return w.Description == "Troco" && w.Amount.Equal(decimal.RequireFromString("20.10"))
		})).Return(nil).Once()

		w, err := svc.CreateWithdrawal(ctx, "user-1", dto.CreateWithdrawalRequest{Description: "Troco", Amount: decPtr("20.1")})

		assert.NoError(t, err)
		assert.Equal(t, "op-1", w.OpeningID)
		assert.Equal(t, "15:00", w.Time)
		repo.AssertExpectations(t)
	})

	t.Run("create rejects non positive amount", func(t *testing.T) {
		svc := services.NewWithdrawalService(new(MockWithdrawalRepository), new(MockDrawerService))

		_, err := svc.CreateWithdrawal(ctx, "user-1", dto.CreateWithdrawalRequest{Description: "Troco", Amount: decPtr("-1")})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("update only in open session", func(t *testing.T) {
		repo := new(MockWithdrawalRepository)
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(repo, drawer)
		amount := decPtr("5")

		repo.On("FindWithdrawalByID", ctx, "user-1", "w1").Return(&domain.Withdrawal{WithdrawalID: "w1", OpeningID: "op-old"}, nil).Once()
		drawer.On("ActiveOpening", ctx, "user-1").Return(opening, nil).Once()

		_, err := svc.UpdateWithdrawal(ctx, "user-1", "w1", dto.UpdateWithdrawalRequest{Amount: amount})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("delete in open session", func(t *testing.T) {
		repo := new(MockWithdrawalRepository)
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(repo, drawer, services.WithClock(func() time.Time { return now }))

		repo.On("FindWithdrawalByID", ctx, "user-1", "w1").Return(&domain.Withdrawal{WithdrawalID: "w1", OpeningID: "op-1"}, nil).Once()
		drawer.On("ActiveOpening", ctx, "user-1").Return(opening, nil).Once()
		repo.On("MarkWithdrawalDeleted", ctx, "user-1", "w1", now).Return(nil).Once()

		assert.NoError(t, svc.DeleteWithdrawal(ctx, "user-1", "w1"))
		repo.AssertExpectations(t)
	})

	t.Run("delete from closed session", func(t *testing.T) {
		repo := new(MockWithdrawalRepository)
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(repo, drawer)

		repo.On("FindWithdrawalByID", ctx, "user-1", "w-old").Return(&domain.Withdrawal{WithdrawalID: "w-old", OpeningID: "op-closed"}, nil).Once()
		drawer.On("ActiveOpening", ctx, "user-1").Return(nil, apperrors.ErrNoOpenDrawer).Once()

		err := svc.DeleteWithdrawal(ctx, "user-1", "w-old")

		assert.ErrorIs(t, err, apperrors.ErrNoOpenDrawer)
		repo.AssertNotCalled(t, "MarkWithdrawalDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete from other session", func(t *testing.T) {
		repo := new(MockWithdrawalRepository)
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(repo, drawer)

		repo.On("FindWithdrawalByID", ctx, "user-1", "w-old").Return(&domain.Withdrawal{WithdrawalID: "w-old", OpeningID: "op-closed"}, nil).Once()
		drawer.On("ActiveOpening", ctx, "user-1").Return(opening, nil).Once()

		err := svc.DeleteWithdrawal(ctx, "user-1", "w-old")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		repo.AssertNotCalled(t, "MarkWithdrawalDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list when closed", func(t *testing.T) {
		drawer := new(MockDrawerService)
		svc := services.NewWithdrawalService(new(MockWithdrawalRepository), drawer)
		drawer.On("Resolve", ctx, "user-1").Return(nil, nil).Once()

		withdrawals, err := svc.ListCurrentWithdrawals(ctx, "user-1")

		assert.NoError(t, err)
		assert.Empty(t, withdrawals)
	})
}
