package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/financebook/financebook/internal/analytics"
	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/utils"
	"github.com/google/uuid"
)

// debtService implements the DebtSvcFacade interface.
type debtService struct {
	BaseService
	debtRepo  portsrepo.DebtRepositoryFacade
	analytics *analytics.Client
}

// DebtServiceOption is a functional option for the debt service.
type DebtServiceOption func(*debtService)

// WithDebtAnalytics adds the analytics dependency.
func WithDebtAnalytics(client *analytics.Client) DebtServiceOption {
	return func(s *debtService) {
		s.analytics = client
	}
}

// NewDebtService creates a new debt service.
func NewDebtService(repo portsrepo.DebtRepositoryFacade, options ...DebtServiceOption) portssvc.DebtSvcFacade {
	svc := &debtService{debtRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// errDebtAlreadyPaid is a terminal conflict: unlike a stale version it cannot
// resolve on a re-read, so the settlement retry skips it.
var errDebtAlreadyPaid = apperrors.NewConflictError("debt is already paid")

func (s *debtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	dueOn, err := utils.ParseDateValue(req.DueOn)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("dueOn must be a YYYY-MM-DD date")
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:           uuid.NewString(),
		UserID:           userID,
		Direction:        domain.DebtDirection(req.Direction),
		CounterpartyName: req.CounterpartyName,
		Description:      req.Description,
		Amount:           req.Amount,
		RemainingAmount:  req.Amount,
		DueOn:            dueOn,
		Status:           domain.DebtActive,
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt",
			slog.String("debt_id", debt.DebtID),
			slog.String("user_id", userID))
		return nil, err
	}

	if s.analytics != nil {
		s.analytics.Enqueue(userID, analytics.EventDebtCreated, map[string]any{
			"direction": req.Direction,
		})
	}

	s.LogInfo(ctx, "Debt created",
		slog.String("debt_id", debt.DebtID),
		slog.String("direction", req.Direction))
	return &debt, nil
}

func (s *debtService) ListDebts(ctx context.Context, userID string, req dto.ListDebtsRequest) ([]domain.Debt, summary.DebtTotals, error) {
	filter := portsrepo.DebtFilter{}
	if req.Direction != "" {
		direction := domain.DebtDirection(req.Direction)
		filter.Direction = &direction
	}
	if req.Status != "" {
		status := domain.DebtStatus(req.Status)
		filter.Status = &status
	}

	debts, err := s.debtRepo.FindDebtsByUser(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts", slog.String("user_id", userID))
		return nil, summary.DebtTotals{}, err
	}
	if debts == nil {
		debts = []domain.Debt{}
	}

	// Totals always cover the full active set, not just the filtered view.
	all := debts
	if filter.Direction != nil || filter.Status != nil {
		all, err = s.debtRepo.FindDebtsByUser(ctx, userID, portsrepo.DebtFilter{})
		if err != nil {
			s.LogError(ctx, err, "Failed to load debts for totals", slog.String("user_id", userID))
			return nil, summary.DebtTotals{}, err
		}
	}

	return debts, summary.LedgerTotals(all), nil
}

// SettleDebt applies a payment against a payable or a collection against a
// receivable. The remaining amount decreases by the settlement amount; the
// debt flips to paid exactly when it reaches zero. The debt update and the
// synthesized cash-flow transaction commit together or not at all. A stale
// version read is retried once against fresh state before surfacing a 409.
func (s *debtService) SettleDebt(ctx context.Context, userID, debtID string, req dto.SettleDebtRequest) (*domain.Debt, *domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}

	debt, txn, err := s.settleOnce(ctx, userID, debtID, req)
	if err != nil && errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, errDebtAlreadyPaid) {
		s.LogInfo(ctx, "Settlement hit a stale debt version, retrying",
			slog.String("debt_id", debtID))
		debt, txn, err = s.settleOnce(ctx, userID, debtID, req)
	}
	if err != nil {
		return nil, nil, err
	}

	if s.analytics != nil {
		s.analytics.Enqueue(userID, analytics.EventDebtSettled, map[string]any{
			"direction": string(debt.Direction),
			"paid_off":  debt.Status == domain.DebtPaid,
		})
	}

	s.LogInfo(ctx, "Debt settled",
		slog.String("debt_id", debtID),
		slog.String("status", string(debt.Status)))
	return debt, txn, nil
}

func (s *debtService) settleOnce(ctx context.Context, userID, debtID string, req dto.SettleDebtRequest) (*domain.Debt, *domain.Transaction, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, userID, debtID)
	if err != nil {
		return nil, nil, err
	}
	if debt.Status == domain.DebtPaid {
		return nil, nil, errDebtAlreadyPaid
	}
	if req.Amount.GreaterThan(debt.RemainingAmount) {
		return nil, nil, apperrors.NewValidationFailedError(
			fmt.Sprintf("amount exceeds the remaining %s", debt.RemainingAmount.String()))
	}

	newRemaining := debt.RemainingAmount.Sub(req.Amount)
	newStatus := domain.DebtActive
	if newRemaining.IsZero() {
		newStatus = domain.DebtPaid
	}

	// Paying a payable is money out; collecting a receivable is money in.
	kind := domain.Expense
	category := domain.DebtPaymentCategory
	if debt.Direction == domain.Receivable {
		kind = domain.Income
		category = domain.DebtCollectionCategory
	}

	description := req.Note
	if description == "" {
		description = fmt.Sprintf("%s - %s", category, debt.CounterpartyName)
	}

	now := time.Now()
	cashFlow := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		Kind:          kind,
		Category:      category,
		Description:   description,
		OccurredOn:    now,
		CreatedAt:     now,
	}

	if err := s.debtRepo.ApplySettlement(ctx, *debt, newRemaining, newStatus, cashFlow); err != nil {
		s.LogError(ctx, err, "Failed to apply settlement",
			slog.String("debt_id", debtID),
			slog.String("user_id", userID))
		return nil, nil, err
	}

	debt.RemainingAmount = newRemaining
	debt.Status = newStatus
	debt.Version++
	debt.LastUpdatedAt = now
	return debt, &cashFlow, nil
}
