package services

import (
	"context"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/financebook/financebook/internal/dto"
)

// DebtSvcFacade exposes the payable/receivable ledger operations.
type DebtSvcFacade interface {
	// CreateDebt validates and persists a new debt.
	CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error)

	// ListDebts returns the owner's debts (due date ascending) plus the
	// ledger totals over the owner's active set.
	ListDebts(ctx context.Context, userID string, req dto.ListDebtsRequest) ([]domain.Debt, summary.DebtTotals, error)

	// SettleDebt applies a payment or collection: it reduces the remaining
	// amount (flipping the debt to paid at zero) and records exactly one
	// corresponding cash-flow transaction, atomically.
	SettleDebt(ctx context.Context, userID, debtID string, req dto.SettleDebtRequest) (*domain.Debt, *domain.Transaction, error)
}
