package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kassemKu/sibai-transactions/internal/apperrors"
	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	portsrepo "github.com/kassemKu/sibai-transactions/internal/core/ports/repositories"
	portssvc "github.com/kassemKu/sibai-transactions/internal/core/ports/services"
	"github.com/kassemKu/sibai-transactions/internal/dto"
	"github.com/kassemKu/sibai-transactions/internal/platform/metrics"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
)

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryWithTx
	sessionRepo  portsrepo.CashSessionRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	balanceSvc   portssvc.BalanceSvc
}

// NewTransactionService creates the exchange transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	sessionRepo portsrepo.CashSessionRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	balanceSvc portssvc.BalanceSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		sessionRepo:  sessionRepo,
		currencyRepo: currencyRepo,
		balanceSvc:   balanceSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ListSessionTransactions(ctx context.Context, cashSessionID string) ([]domain.Transaction, error) {
	if _, err := s.sessionRepo.FindCashSessionByID(ctx, cashSessionID); err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", cashSessionID, err)
	}
	txns, err := s.txnRepo.ListTransactionsBySession(ctx, cashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions of %s: %w", cashSessionID, err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// CreateTransaction quotes against freshly read rates and records a pending transaction.
// The acting operator's float in the target currency must cover the payout.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error) {
	session, err := s.sessionRepo.FindOpenCashSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no cash session is open", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to get current cash session: %w", err)
	}
	if session.Status != domain.SessionActive {
		return nil, fmt.Errorf("%w: cash session %s is %s and accepts no new transactions",
			apperrors.ErrConflict, session.CashSessionID, session.Status)
	}

	from, to, err := loadPair(ctx, s.currencyRepo, req.FromCurrencyID, req.ToCurrencyID)
	if err != nil {
		return nil, err
	}
	for _, c := range []*domain.Currency{from, to} {
		if err := s.ensureTradable(ctx, session.CashSessionID, c); err != nil {
			return nil, err
		}
	}
	quote, err := accounting.CalculateCore(*from, *to, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate transaction: %w", err)
	}

	ok, err := s.balanceSvc.HasSufficientBalance(ctx, to.CurrencyID, quote.ConvertedAmount, session.CashSessionID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check available balance: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: not enough %s to pay out %s", apperrors.ErrInsufficientBalance, to.Code, quote.ConvertedAmount.StringFixed(2))
	}

	ts := now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CashSessionID:   session.CashSessionID,
		FromCurrencyID:  from.CurrencyID,
		ToCurrencyID:    to.CurrencyID,
		OriginalAmount:  quote.OriginalAmount,
		ConvertedAmount: quote.ConvertedAmount,
		USDAmount:       quote.USDAmount,
		ProfitFromUSD:   quote.ProfitFromUSD,
		ProfitToUSD:     quote.ProfitToUSD,
		TotalProfitUSD:  quote.TotalProfitUSD,
		FromRates:       quote.FromRates,
		ToRates:         quote.ToRates,
		AssignedTo:      req.AssignedTo,
		Status:          domain.TransactionPending,
		Notes:           req.Notes,
		AuditFields:     domain.AuditFields{CreatedAt: ts, CreatedBy: actorID, LastUpdatedAt: ts, LastUpdatedBy: actorID},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("session_id", session.CashSessionID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	metrics.TransactionRecorded(string(txn.Status))
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID),
		slog.String("session_id", session.CashSessionID),
		slog.String("total_profit_usd", txn.TotalProfitUSD.String()))
	if txn.TotalProfitUSD.IsNegative() {
		s.LogWarn(ctx, "Transaction has a negative profit", slog.String("transaction_id", txn.TransactionID))
	}
	return &txn, nil
}

// ensureTradable rejects currencies without a balance row in the session. Such a currency
// was added after the session opened and can be traded from the next session on.
func (s *transactionService) ensureTradable(ctx context.Context, sessionID string, c *domain.Currency) error {
	_, err := s.sessionRepo.FindCashBalance(ctx, sessionID, c.CurrencyID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("%w: %s was added after cash session %s opened and can be traded from the next session",
			apperrors.ErrValidation, c.Code, sessionID)
	default:
		return fmt.Errorf("failed to get balance of %s in session %s: %w", c.Code, sessionID, err)
	}
}

// ConfirmTransaction completes a pending transaction and writes its movement pair atomically.
func (s *transactionService) ConfirmTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error) {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	txn, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.TransactionCompleted) {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrConflict, transactionID, txn.Status)
	}

	session, err := s.sessionRepo.FindCashSessionByIDForShare(ctx, tx, txn.CashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", txn.CashSessionID, err)
	}
	if !session.Status.IsOpen() {
		return nil, fmt.Errorf("%w: cash session %s is closed", apperrors.ErrConflict, txn.CashSessionID)
	}

	ts := now()
	movements := txn.Movements()
	for i := range movements {
		movements[i].CashMovementID = uuid.NewString()
		movements[i].CreatedAt = ts
		movements[i].CreatedBy = actorID
	}

	txn.Status = domain.TransactionCompleted
	txn.LastUpdatedAt = ts
	txn.LastUpdatedBy = actorID

	logAttrs := []any{slog.String("transaction_id", transactionID), slog.String("session_id", txn.CashSessionID)}
	if err := s.txnRepo.UpdateTransactionStatusInTx(ctx, tx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to complete transaction", logAttrs...)
		return nil, fmt.Errorf("failed to confirm transaction %s: %w", transactionID, err)
	}
	if err := s.txnRepo.SaveCashMovementsInTx(ctx, tx, movements); err != nil {
		s.LogError(ctx, err, "Failed to save cash movements", logAttrs...)
		return nil, fmt.Errorf("failed to confirm transaction %s: %w", transactionID, err)
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction confirmation", logAttrs...)
		return nil, fmt.Errorf("failed to confirm transaction %s: %w", transactionID, err)
	}

	metrics.TransactionRecorded(string(txn.Status))
	s.LogInfo(ctx, "Transaction confirmed", logAttrs...)
	return txn, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, transactionID, actorID string) (*domain.Transaction, error) {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	txn, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.TransactionCancelled) {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrConflict, transactionID, txn.Status)
	}

	txn.Status = domain.TransactionCancelled
	txn.LastUpdatedAt = now()
	txn.LastUpdatedBy = actorID

	if err := s.txnRepo.UpdateTransactionStatusInTx(ctx, tx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to cancel transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to cancel transaction %s: %w", transactionID, err)
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction cancellation", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to cancel transaction %s: %w", transactionID, err)
	}

	metrics.TransactionRecorded(string(txn.Status))
	s.LogInfo(ctx, "Transaction cancelled", slog.String("transaction_id", transactionID))
	return txn, nil
}
