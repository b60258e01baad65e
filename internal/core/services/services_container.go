package services

import (
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Conversion = NewConversionService(repos.CurrencyRepo)

	// Transactions check the operator's float through the balance service.
	container.Balance = NewBalanceService(repos.CashSessionRepo, repos.TransactionRepo, repos.CurrencyRepo)

	container.CashSession = NewCashSessionService(repos.CashSessionRepo, repos.CasherSessionRepo, repos.CurrencyRepo)
	container.CasherSession = NewCasherSessionService(
		repos.CasherSessionRepo,
		repos.CashSessionRepo,
		repos.TransactionRepo,
		repos.UserRepo,
		repos.CurrencyRepo,
	)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CashSessionRepo,
		repos.CurrencyRepo,
		container.Balance,
	)

	return container
}
