package services

import (
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil, in which case every drawer lookup goes to the database.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.DrawerCache, opts ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, opts...)
	container.Token = NewTokenService(cfg, container.User, opts...)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	// The drawer resolver comes first; every cash operation depends on it.
	container.Drawer = NewDrawerService(repos.OpeningRepo, repos.ClosureRepo, repos.SaleRepo, repos.WithdrawalRepo, cache, opts...)
	container.Sale = NewSaleService(repos.SaleRepo, container.Drawer, opts...)
	container.Withdrawal = NewWithdrawalService(repos.WithdrawalRepo, container.Drawer, opts...)
	container.Closure = NewClosureService(repos.ClosureRepo, repos.OpeningRepo, repos.SaleRepo, repos.WithdrawalRepo, container.Drawer, cache, opts...)

	container.Settings = NewSettingsService(repos.SettingsRepo, opts...)
	container.Report = NewReportService(repos.ClosureRepo, container.Settings, opts...)
	container.Housekeeping = NewHousekeepingService(repos.OpeningRepo, repos.SaleRepo, repos.WithdrawalRepo, opts...)

	return container
}
