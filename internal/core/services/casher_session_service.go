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
	"github.com/kassemKu/sibai-transactions/internal/utils/accounting"
)

type casherSessionService struct {
	BaseService
	casherRepo   portsrepo.CasherSessionRepositoryFacade
	sessionRepo  portsrepo.CashSessionRepositoryWithTx
	txnRepo      portsrepo.TransactionReader
	userRepo     portsrepo.UserReader
	currencyRepo portsrepo.CurrencyReader
}

// NewCasherSessionService creates the cashier sub-session lifecycle service.
func NewCasherSessionService(
	casherRepo portsrepo.CasherSessionRepositoryFacade,
	sessionRepo portsrepo.CashSessionRepositoryWithTx,
	txnRepo portsrepo.TransactionReader,
	userRepo portsrepo.UserReader,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.CasherSessionSvcFacade {
	return &casherSessionService{
		casherRepo:   casherRepo,
		sessionRepo:  sessionRepo,
		txnRepo:      txnRepo,
		userRepo:     userRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CasherSessionSvcFacade = (*casherSessionService)(nil)

func (s *casherSessionService) GetCasherCashSession(ctx context.Context, casherSessionID string) (*domain.CasherCashSession, error) {
	cs, err := s.casherRepo.FindCasherSessionByID(ctx, casherSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casher session %s: %w", casherSessionID, err)
	}
	return cs, nil
}

func (s *casherSessionService) CurrentCasherCashSession(ctx context.Context, userID string) (*domain.CasherCashSession, error) {
	cs, err := s.casherRepo.FindOpenCasherSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current casher session of %s: %w", userID, err)
	}
	return cs, nil
}

func (s *casherSessionService) ListCasherCashSessions(ctx context.Context, cashSessionID string) ([]domain.CasherCashSession, error) {
	if _, err := s.sessionRepo.FindCashSessionByID(ctx, cashSessionID); err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", cashSessionID, err)
	}
	sessions, err := s.casherRepo.ListCasherSessionsBySession(ctx, cashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list casher sessions of %s: %w", cashSessionID, err)
	}
	if sessions == nil {
		return []domain.CasherCashSession{}, nil
	}
	return sessions, nil
}

func (s *casherSessionService) OpenCasherCashSession(ctx context.Context, req dto.OpenCasherSessionRequest, actorID string) (*domain.CasherCashSession, error) {
	if err := s.validateBalanceMap(ctx, req.OpeningBalances, "opening"); err != nil {
		return nil, err
	}

	casher, err := s.userRepo.FindUserByID(ctx, req.CasherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casher %s: %w", req.CasherID, err)
	}
	if casher.Role != domain.RoleCasher || !casher.IsActive {
		return nil, fmt.Errorf("%w: user %s is not an active casher", apperrors.ErrValidation, req.CasherID)
	}

	parentID := req.CashSessionID
	if parentID == "" {
		current, err := s.sessionRepo.FindOpenCashSession(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get current cash session: %w", err)
		}
		parentID = current.CashSessionID
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	parent, err := s.sessionRepo.FindCashSessionByIDForShare(ctx, tx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", parentID, err)
	}
	if parent.Status != domain.SessionActive {
		return nil, fmt.Errorf("%w: cash session %s is %s, casher sessions can only open in an active session",
			apperrors.ErrConflict, parentID, parent.Status)
	}

	ts := now()
	cs := domain.CasherCashSession{
		CasherSessionID:       uuid.NewString(),
		CashSessionID:         parentID,
		CasherID:              req.CasherID,
		Status:                domain.SessionActive,
		OpeningBalances:       req.OpeningBalances,
		SystemBalances:        domain.BalanceMap{},
		ActualClosingBalances: domain.BalanceMap{},
		OpenedAt:              ts,
		OpenedBy:              actorID,
		AuditFields:           domain.AuditFields{CreatedAt: ts, CreatedBy: actorID, LastUpdatedAt: ts, LastUpdatedBy: actorID},
	}

	if err := s.casherRepo.SaveCasherSessionInTx(ctx, tx, cs); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: casher %s already has an open casher session", apperrors.ErrConflict, req.CasherID)
		}
		s.LogError(ctx, err, "Failed to save casher session", slog.String("session_id", parentID),
			slog.String("casher_id", req.CasherID))
		return nil, fmt.Errorf("failed to open casher session: %w", err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit casher session", slog.String("session_id", parentID))
		return nil, fmt.Errorf("failed to open casher session: %w", err)
	}

	s.LogInfo(ctx, "Casher session opened", slog.String("casher_session_id", cs.CasherSessionID),
		slog.String("session_id", parentID), slog.String("casher_id", req.CasherID))
	return &cs, nil
}

// RequestCasherSessionClose is initiated by the cashier who owns the sub-session or by an admin.
func (s *casherSessionService) RequestCasherSessionClose(ctx context.Context, casherSessionID, actorID string, actorRole domain.UserRole) (*domain.CasherCashSession, error) {
	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	cs, err := s.casherRepo.FindCasherSessionByIDForUpdate(ctx, tx, casherSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casher session %s: %w", casherSessionID, err)
	}
	if actorRole != domain.RoleAdmin && cs.CasherID != actorID {
		return nil, fmt.Errorf("%w: casher session %s belongs to another casher", apperrors.ErrForbidden, casherSessionID)
	}
	if cs.Status != domain.SessionActive {
		return nil, fmt.Errorf("%w: casher session %s is %s, only active casher sessions can request closing",
			apperrors.ErrConflict, casherSessionID, cs.Status)
	}

	system, err := s.operatorSystemBalances(ctx, *cs)
	if err != nil {
		return nil, err
	}

	ts := now()
	cs.Status = domain.SessionPending
	cs.SystemBalances = system
	cs.LastUpdatedAt = ts
	cs.LastUpdatedBy = actorID

	if err := s.casherRepo.UpdateCasherSessionInTx(ctx, tx, *cs); err != nil {
		s.LogError(ctx, err, "Failed to mark casher session pending", slog.String("casher_session_id", casherSessionID))
		return nil, fmt.Errorf("failed to request close of casher session %s: %w", casherSessionID, err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit casher session status", slog.String("casher_session_id", casherSessionID))
		return nil, fmt.Errorf("failed to request close of casher session %s: %w", casherSessionID, err)
	}

	s.LogInfo(ctx, "Casher session close requested", slog.String("casher_session_id", casherSessionID))
	return cs, nil
}

func (s *casherSessionService) CloseCasherCashSession(ctx context.Context, casherSessionID string, actual domain.BalanceMap, actorID string) (*domain.CasherCashSession, error) {
	if err := s.validateBalanceMap(ctx, actual, "actual closing"); err != nil {
		return nil, err
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	cs, err := s.casherRepo.FindCasherSessionByIDForUpdate(ctx, tx, casherSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casher session %s: %w", casherSessionID, err)
	}
	if !cs.Status.IsOpen() {
		return nil, fmt.Errorf("%w: casher session %s is already closed", apperrors.ErrConflict, casherSessionID)
	}

	parent, err := s.sessionRepo.FindCashSessionByIDForShare(ctx, tx, cs.CashSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash session %s: %w", cs.CashSessionID, err)
	}
	if !parent.Status.IsOpen() {
		return nil, fmt.Errorf("%w: cash session %s is already closed", apperrors.ErrConflict, cs.CashSessionID)
	}

	system, err := s.operatorSystemBalances(ctx, *cs)
	if err != nil {
		return nil, err
	}

	ts := now()
	closedBy := actorID
	cs.Status = domain.SessionClosed
	cs.SystemBalances = system
	cs.ActualClosingBalances = actual
	cs.ClosedAt = &ts
	cs.ClosedBy = &closedBy
	cs.LastUpdatedAt = ts
	cs.LastUpdatedBy = actorID

	if err := s.casherRepo.UpdateCasherSessionInTx(ctx, tx, *cs); err != nil {
		s.LogError(ctx, err, "Failed to close casher session", slog.String("casher_session_id", casherSessionID))
		return nil, fmt.Errorf("failed to close casher session %s: %w", casherSessionID, err)
	}
	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit casher session close", slog.String("casher_session_id", casherSessionID))
		return nil, fmt.Errorf("failed to close casher session %s: %w", casherSessionID, err)
	}

	for currencyID, amount := range actual {
		if diff := accounting.Difference(amount, system[currencyID]); !diff.IsZero() {
			s.LogWarn(ctx, "Casher drawer discrepancy",
				slog.String("casher_session_id", casherSessionID),
				slog.String("currency_id", currencyID),
				slog.String("difference", diff.String()))
		}
	}
	s.LogInfo(ctx, "Casher session closed", slog.String("casher_session_id", casherSessionID))
	return cs, nil
}

// operatorSystemBalances recomputes the drawer from the declared opening and the
// cashier's completed transactions in the parent session.
func (s *casherSessionService) operatorSystemBalances(ctx context.Context, cs domain.CasherCashSession) (domain.BalanceMap, error) {
	txns, err := s.txnRepo.ListTransactionsBySession(ctx, cs.CashSessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list session transactions", slog.String("session_id", cs.CashSessionID))
		return nil, fmt.Errorf("failed to compute casher balances: %w", err)
	}
	return accounting.OperatorSystemBalances(cs.OpeningBalances, accounting.SumOperatorTransactions(txns, cs.CasherID)), nil
}

// validateBalanceMap rejects negative amounts and unknown currencies.
func (s *casherSessionService) validateBalanceMap(ctx context.Context, balances domain.BalanceMap, label string) error {
	for currencyID, amount := range balances {
		if amount.IsNegative() {
			return fmt.Errorf("%w: %s balance of %s is negative", apperrors.ErrValidation, label, currencyID)
		}
	}
	if len(balances) == 0 {
		return nil
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies: %w", err)
	}
	known := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		known[c.CurrencyID] = struct{}{}
	}
	for currencyID := range balances {
		if _, ok := known[currencyID]; !ok {
			return fmt.Errorf("%w: unknown currency %s in %s balances", apperrors.ErrValidation, currencyID, label)
		}
	}
	return nil
}
