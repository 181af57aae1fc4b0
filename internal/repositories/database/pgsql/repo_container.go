package pgsql

import (
	portsrepo "github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		OpeningRepo:    newPgxOpeningRepository(dbPool),
		SaleRepo:       newPgxSaleRepository(dbPool),
		WithdrawalRepo: newPgxWithdrawalRepository(dbPool),
		ClosureRepo:    newPgxClosureRepository(dbPool),
		SettingsRepo:   newPgxSettingsRepository(dbPool),
	}
}
