package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	OpeningRepo    OpeningRepositoryFacade
	SaleRepo       SaleRepositoryFacade
	WithdrawalRepo WithdrawalRepositoryFacade
	ClosureRepo    ClosureRepositoryFacade
	SettingsRepo   SettingsRepositoryFacade
}
