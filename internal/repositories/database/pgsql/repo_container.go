package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	cashSessionRepo := newPgxCashSessionRepository(dbPool)
	casherSessionRepo := newPgxCasherSessionRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:      currencyRepo,
		UserRepo:          userRepo,
		CashSessionRepo:   cashSessionRepo,
		CasherSessionRepo: casherSessionRepo,
		TransactionRepo:   transactionRepo,
	}
}
