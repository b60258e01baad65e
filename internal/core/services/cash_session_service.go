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
	"github.com/kassemKu/sibai-transactions/internal/platform/metrics"
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type cashSessionService struct {
	BaseService
	sessionRepo  portsrepo.CashSessionRepositoryWithTx
	casherRepo   portsrepo.CasherSessionTxOperator
	currencyRepo portsrepo.CurrencyReader
}

// NewCashSessionService creates the shop-wide session lifecycle service.
func NewCashSessionService(
	sessionRepo portsrepo.CashSessionRepositoryWithTx,
	casherRepo portsrepo.CasherSessionTxOperator,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.CashSessionSvcFacade {
	return &cashSessionService{
		sessionRepo:  sessionRepo,
		casherRepo:   casherRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

func (s *cashSessionService) CurrentActiveSession(ctx context.Context) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindOpenCashSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current cash session: %w", err)
	}
	return session, nil
}

func (s *cashSessionService) GetCashSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	session, err := s.sessionRepo.FindCashSessionByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", sessionID, err)
	}
	return session, nil
}

// OpenCashSession opens a session under the session advisory lock. Each currency's opening
// balance is the most recent reconciled actual closing balance for it, or zero.
func (s *cashSessionService) OpenCashSession(ctx context.Context, actorID string) (*domain.CashSession, error) {
	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	if err := s.sessionRepo.LockCashSessionsInTx(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to lock cash sessions", slog.String("operation", "open_cash_session"))
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}

	existing, err := s.sessionRepo.FindOpenCashSessionInTx(ctx, tx)
	if err == nil {
		return nil, fmt.Errorf("%w: cash session %s is still %s", apperrors.ErrConflict, existing.CashSessionID, existing.Status)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up open cash session", slog.String("operation", "open_cash_session"))
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}
	carried, err := s.sessionRepo.FindLatestActualClosingBalancesInTx(ctx, tx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read carried-forward balances", slog.String("operation", "open_cash_session"))
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}

	ts := now()
	audit := domain.AuditFields{CreatedAt: ts, CreatedBy: actorID, LastUpdatedAt: ts, LastUpdatedBy: actorID}
	session := domain.CashSession{
		CashSessionID:     uuid.NewString(),
		Status:            domain.SessionActive,
		OpenedAt:          ts,
		OpenedBy:          actorID,
		OpenExchangeRates: snapshotRates(currencies),
		AuditFields:       audit,
	}

	balances := make([]domain.CashBalance, 0, len(currencies))
	for _, c := range currencies {
		opening, ok := carried[c.CurrencyID]
		if !ok {
			opening = decimal.Zero
		}
		balances = append(balances, domain.CashBalance{
			CashBalanceID:  uuid.NewString(),
			CashSessionID:  session.CashSessionID,
			CurrencyID:     c.CurrencyID,
			OpeningBalance: opening,
			ClosingBalance: opening,
			AuditFields:    audit,
		})
	}

	if err := s.sessionRepo.SaveCashSessionInTx(ctx, tx, session, balances); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to save cash session", slog.String("operation", "open_cash_session"),
				slog.String("session_id", session.CashSessionID))
		}
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit cash session", slog.String("session_id", session.CashSessionID))
		return nil, fmt.Errorf("failed to open cash session: %w", err)
	}

	s.LogInfo(ctx, "Cash session opened", slog.String("session_id", session.CashSessionID),
		slog.Int("currencies", len(balances)))
	return &session, nil
}

func (s *cashSessionService) BeginCloseCashSession(ctx context.Context, sessionID, actorID string) (*domain.CashSession, error) {
	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	session, err := s.sessionRepo.FindCashSessionByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", sessionID, err)
	}
	if session.Status != domain.SessionActive {
		return nil, fmt.Errorf("%w: cash session %s is %s, only active sessions can begin closing",
			apperrors.ErrConflict, sessionID, session.Status)
	}

	session.Status = domain.SessionPending
	session.LastUpdatedAt = now()
	session.LastUpdatedBy = actorID

	if err := s.sessionRepo.UpdateCashSessionInTx(ctx, tx, *session); err != nil {
		s.LogError(ctx, err, "Failed to mark cash session pending", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to begin closing cash session %s: %w", sessionID, err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit cash session status", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to begin closing cash session %s: %w", sessionID, err)
	}

	s.LogInfo(ctx, "Cash session closing started", slog.String("session_id", sessionID))
	return session, nil
}

// CloseCashSession reconciles every submitted currency and closes the session in one
// database transaction. Balance rows not covered by actual are left unreconciled.
func (s *cashSessionService) CloseCashSession(ctx context.Context, sessionID string, actual []domain.ActualClosingBalance, actorID string) (*domain.CashSessionCloseResult, error) {
	if err := validateActualBalances(actual); err != nil {
		return nil, err
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	logAttrs := []any{slog.String("operation", "close_cash_session"), slog.String("session_id", sessionID)}

	if err := s.sessionRepo.LockCashSessionsInTx(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to lock cash sessions", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}

	session, err := s.sessionRepo.FindCashSessionByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", sessionID, err)
	}
	if !session.Status.IsOpen() {
		return nil, fmt.Errorf("%w: cash session %s is already closed", apperrors.ErrConflict, sessionID)
	}

	openSubSessions, err := s.casherRepo.CountOpenCasherSessionsInTx(ctx, tx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count open casher sessions", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}
	if openSubSessions > 0 {
		return nil, fmt.Errorf("%w: %d casher sessions of cash session %s are still open",
			apperrors.ErrConflict, openSubSessions, sessionID)
	}

	balances, err := s.sessionRepo.FindCashBalancesInTx(ctx, tx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read cash balances", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}
	byCurrency := make(map[string]int, len(balances))
	for i, b := range balances {
		byCurrency[b.CurrencyID] = i
	}
	for _, a := range actual {
		if _, ok := byCurrency[a.CurrencyID]; !ok {
			return nil, fmt.Errorf("%w: currency %s has no balance in cash session %s",
				apperrors.ErrValidation, a.CurrencyID, sessionID)
		}
	}

	lines, err := s.sessionRepo.FindMovementLinesInTx(ctx, tx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read cash movements", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}
	totals := accounting.SumCompletedMovements(lines)

	ts := now()
	reconciled := make([]domain.CashBalance, 0, len(actual))
	differences := make([]decimal.Decimal, 0, len(actual))
	for _, a := range actual {
		idx := byCurrency[a.CurrencyID]
		b := balances[idx]
		t := totals[a.CurrencyID]
		system := accounting.SystemClosing(b.OpeningBalance, t)
		diff := accounting.Difference(a.Amount, system)
		amount := a.Amount

		b.TotalIn = t.In
		b.TotalOut = t.Out
		b.ClosingBalance = system
		b.ActualClosingBalance = &amount
		b.Difference = &diff
		b.LastUpdatedAt = ts
		b.LastUpdatedBy = actorID

		balances[idx] = b
		reconciled = append(reconciled, b)
		differences = append(differences, diff)
	}

	for _, b := range balances {
		if !b.IsReconciled() {
			s.LogWarn(ctx, "Currency left unreconciled at session close",
				slog.String("session_id", sessionID), slog.String("currency_id", b.CurrencyID))
		}
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}

	closedBy := actorID
	session.Status = domain.SessionClosed
	session.ClosedAt = &ts
	session.ClosedBy = &closedBy
	session.CloseExchangeRates = snapshotRates(currencies)
	session.LastUpdatedAt = ts
	session.LastUpdatedBy = actorID

	if err := s.sessionRepo.UpdateCashBalancesInTx(ctx, tx, reconciled); err != nil {
		s.LogError(ctx, err, "Failed to persist reconciled balances", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}
	if err := s.sessionRepo.UpdateCashSessionInTx(ctx, tx, *session); err != nil {
		s.LogError(ctx, err, "Failed to persist closed session", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit session close", logAttrs...)
		return nil, fmt.Errorf("failed to close cash session %s: %w", sessionID, err)
	}

	metrics.SessionClosed(differences)
	s.LogInfo(ctx, "Cash session closed", slog.String("session_id", sessionID),
		slog.Int("reconciled", len(reconciled)), slog.Int("balances", len(balances)))

	return &domain.CashSessionCloseResult{Session: *session, Balances: balances}, nil
}

// validateActualBalances rejects an empty list, duplicate currencies and negative amounts.
func validateActualBalances(actual []domain.ActualClosingBalance) error {
	if len(actual) == 0 {
		return fmt.Errorf("%w: at least one actual closing balance is required", apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(actual))
	for _, a := range actual {
		if a.CurrencyID == "" {
			return fmt.Errorf("%w: currency id is required", apperrors.ErrValidation)
		}
		if _, dup := seen[a.CurrencyID]; dup {
			return fmt.Errorf("%w: currency %s submitted more than once", apperrors.ErrValidation, a.CurrencyID)
		}
		if a.Amount.IsNegative() {
			return fmt.Errorf("%w: actual closing balance of %s is negative", apperrors.ErrValidation, a.CurrencyID)
		}
		seen[a.CurrencyID] = struct{}{}
	}
	return nil
}

func snapshotRates(currencies []domain.Currency) domain.RateSnapshot {
	rates := make(domain.RateSnapshot, len(currencies))
	for _, c := range currencies {
		rates[c.CurrencyID] = c.RateToUSD
	}
	return rates
}
