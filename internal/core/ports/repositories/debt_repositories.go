package repositories

import (
	"context"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtFilter narrows a debt listing.
type DebtFilter struct {
	Direction *domain.DebtDirection
	Status    *domain.DebtStatus
}

// DebtReader defines read operations for debt data.
type DebtReader interface {
	// FindDebtByID retrieves one debt scoped to its owner.
	FindDebtByID(ctx context.Context, userID, debtID string) (*domain.Debt, error)

	// FindDebtsByUser retrieves an owner's debts ordered by due date ascending.
	FindDebtsByUser(ctx context.Context, userID string, filter DebtFilter) ([]domain.Debt, error)

	// FindUpcomingPayables retrieves the next active payable debts by due date.
	FindUpcomingPayables(ctx context.Context, userID string, limit int) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debt data.
type DebtWriter interface {
	// SaveDebt persists a new debt.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// ApplySettlement updates the debt's remaining amount and status and
	// inserts the corresponding cash-flow transaction in a single database
	// transaction. The update is guarded by debt.Version; a stale version
	// yields a conflict error.
	ApplySettlement(ctx context.Context, debt domain.Debt, newRemaining decimal.Decimal, newStatus domain.DebtStatus, cashFlow domain.Transaction) error
}

// DebtRepositoryFacade combines all debt repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
