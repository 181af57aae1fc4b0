package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Users ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	args := m.Called(ctx, hash)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, hash string, expiry *time.Time) error {
	args := m.Called(ctx, userID, hash, expiry)
	return args.Error(0)
}

// --- Transactions ---

// mockTx stands in for the TransactionManager part of a repository. Begin hands out a nil pgx.Tx.
type mockTx struct {
	mock.Mock
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *mockTx) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Openings ---

type MockOpeningRepository struct {
	mockTx
}

func (m *MockOpeningRepository) FindOpeningByID(ctx context.Context, userID, openingID string) (*domain.Opening, error) {
	args := m.Called(ctx, userID, openingID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockOpeningRepository) FindLatestActiveOpening(ctx context.Context, userID string) (*domain.Opening, error) {
	args := m.Called(ctx, userID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockOpeningRepository) FindActiveOpeningsCreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Opening, error) {
	args := m.Called(ctx, cutoff)
	var openings []domain.Opening
	if args.Get(0) != nil {
		openings = args.Get(0).([]domain.Opening)
	}
	return openings, args.Error(1)
}

func (m *MockOpeningRepository) SaveOpening(ctx context.Context, opening domain.Opening) error {
	args := m.Called(ctx, opening)
	return args.Error(0)
}

func (m *MockOpeningRepository) SaveOpeningTx(ctx context.Context, tx pgx.Tx, opening domain.Opening) error {
	args := m.Called(ctx, tx, opening)
	return args.Error(0)
}

func (m *MockOpeningRepository) LockUserOpeningsTx(ctx context.Context, tx pgx.Tx, userID string) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *MockOpeningRepository) FindLatestActiveOpeningTx(ctx context.Context, tx pgx.Tx, userID string) (*domain.Opening, error) {
	args := m.Called(ctx, tx, userID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockOpeningRepository) MarkOpeningDeletedTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, userID, openingID, deletedAt)
	return args.Error(0)
}

// --- Sales ---

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, userID, saleID)
	var sale *domain.Sale
	if args.Get(0) != nil {
		sale = args.Get(0).(*domain.Sale)
	}
	return sale, args.Error(1)
}

func (m *MockSaleRepository) FindSalesByOpening(ctx context.Context, userID, openingID string) ([]domain.Sale, error) {
	args := m.Called(ctx, userID, openingID)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	return sales, args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) MarkSaleDeleted(ctx context.Context, userID, saleID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, saleID, deletedAt)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveSalesTx(ctx context.Context, tx pgx.Tx, sales []domain.Sale) error {
	args := m.Called(ctx, tx, sales)
	return args.Error(0)
}

func (m *MockSaleRepository) MarkSalesDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, userID, openingID, deletedAt)
	return args.Error(0)
}

func (m *MockSaleRepository) PurgeDeletedSales(ctx context.Context, deletedBefore time.Time) (int64, error) {
	args := m.Called(ctx, deletedBefore)
	return args.Get(0).(int64), args.Error(1)
}

// --- Withdrawals ---

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, userID, withdrawalID)
	var w *domain.Withdrawal
	if args.Get(0) != nil {
		w = args.Get(0).(*domain.Withdrawal)
	}
	return w, args.Error(1)
}

func (m *MockWithdrawalRepository) FindWithdrawalsByOpening(ctx context.Context, userID, openingID string) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, userID, openingID)
	var withdrawals []domain.Withdrawal
	if args.Get(0) != nil {
		withdrawals = args.Get(0).([]domain.Withdrawal)
	}
	return withdrawals, args.Error(1)
}

func (m *MockWithdrawalRepository) SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) UpdateWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) MarkWithdrawalDeleted(ctx context.Context, userID, withdrawalID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, withdrawalID, deletedAt)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) SaveWithdrawalsTx(ctx context.Context, tx pgx.Tx, withdrawals []domain.Withdrawal) error {
	args := m.Called(ctx, tx, withdrawals)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) MarkWithdrawalsDeletedByOpeningTx(ctx context.Context, tx pgx.Tx, userID, openingID string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, userID, openingID, deletedAt)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) PurgeDeletedWithdrawals(ctx context.Context, deletedBefore time.Time) (int64, error) {
	args := m.Called(ctx, deletedBefore)
	return args.Get(0).(int64), args.Error(1)
}

// --- Closures ---

type MockClosureRepository struct {
	mock.Mock
}

func (m *MockClosureRepository) FindClosureByID(ctx context.Context, userID, closureID string) (*domain.Closure, error) {
	args := m.Called(ctx, userID, closureID)
	var c *domain.Closure
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Closure)
	}
	return c, args.Error(1)
}

func (m *MockClosureRepository) FindClosureByOpening(ctx context.Context, userID, openingID string) (*domain.Closure, error) {
	args := m.Called(ctx, userID, openingID)
	var c *domain.Closure
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Closure)
	}
	return c, args.Error(1)
}

func (m *MockClosureRepository) ListClosures(ctx context.Context, userID string, filter portsrepo.ClosureListFilter) ([]domain.Closure, error) {
	args := m.Called(ctx, userID, filter)
	var closures []domain.Closure
	if args.Get(0) != nil {
		closures = args.Get(0).([]domain.Closure)
	}
	return closures, args.Error(1)
}

func (m *MockClosureRepository) CountClosuresByMonth(ctx context.Context, userID string) ([]domain.ClosureMonth, error) {
	args := m.Called(ctx, userID)
	var months []domain.ClosureMonth
	if args.Get(0) != nil {
		months = args.Get(0).([]domain.ClosureMonth)
	}
	return months, args.Error(1)
}

func (m *MockClosureRepository) UpsertClosure(ctx context.Context, closure domain.Closure) error {
	args := m.Called(ctx, closure)
	return args.Error(0)
}

func (m *MockClosureRepository) MarkClosureDeletedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, userID, closureID, deletedAt)
	return args.Error(0)
}

func (m *MockClosureRepository) MarkClosureReopenedTx(ctx context.Context, tx pgx.Tx, userID, closureID string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, userID, closureID, deletedAt)
	return args.Error(0)
}

// --- Settings ---

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	var s *domain.UserSettings
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.UserSettings)
	}
	return s, args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings domain.UserSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Cache and tracker ---

type MockDrawerCache struct {
	mock.Mock
}

func (m *MockDrawerCache) Get(ctx context.Context, userID string) (*domain.Opening, bool, error) {
	args := m.Called(ctx, userID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Bool(1), args.Error(2)
}

func (m *MockDrawerCache) Set(ctx context.Context, opening domain.Opening) error {
	args := m.Called(ctx, opening)
	return args.Error(0)
}

func (m *MockDrawerCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Track(ctx context.Context, userID, event string, properties map[string]any) {
	m.Called(ctx, userID, event, properties)
}

var (
	_ portsrepo.UserRepositoryFacade       = (*MockUserRepository)(nil)
	_ portsrepo.OpeningRepositoryFacade    = (*MockOpeningRepository)(nil)
	_ portsrepo.SaleRepositoryFacade       = (*MockSaleRepository)(nil)
	_ portsrepo.WithdrawalRepositoryFacade = (*MockWithdrawalRepository)(nil)
	_ portsrepo.ClosureRepositoryFacade    = (*MockClosureRepository)(nil)
	_ portsrepo.SettingsRepositoryFacade   = (*MockSettingsRepository)(nil)
	_ portsrepo.DrawerCache                = (*MockDrawerCache)(nil)
)

// --- Drawer resolver ---

type MockDrawerService struct {
	mock.Mock
}

func (m *MockDrawerService) Resolve(ctx context.Context, userID string) (*domain.Opening, error) {
	args := m.Called(ctx, userID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockDrawerService) ActiveOpening(ctx context.Context, userID string) (*domain.Opening, error) {
	args := m.Called(ctx, userID)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockDrawerService) HasOpenDrawer(ctx context.Context, userID string) bool {
	return m.Called(ctx, userID).Bool(0)
}

func (m *MockDrawerService) Status(ctx context.Context, userID string) domain.DrawerStatus {
	return m.Called(ctx, userID).Get(0).(domain.DrawerStatus)
}

func (m *MockDrawerService) Open(ctx context.Context, userID string, startingAmount decimal.Decimal) (*domain.Opening, error) {
	args := m.Called(ctx, userID, startingAmount)
	var opening *domain.Opening
	if args.Get(0) != nil {
		opening = args.Get(0).(*domain.Opening)
	}
	return opening, args.Error(1)
}

func (m *MockDrawerService) Summary(ctx context.Context, userID string) (*domain.DrawerSummary, error) {
	args := m.Called(ctx, userID)
	var summary *domain.DrawerSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.DrawerSummary)
	}
	return summary, args.Error(1)
}

func (m *MockDrawerService) Forget(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

var _ portssvc.DrawerSvcFacade = (*MockDrawerService)(nil)
