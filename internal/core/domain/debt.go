package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtDirection distinguishes money the user owes from money owed to them.
type DebtDirection string

const (
	Payable    DebtDirection = "payable"
	Receivable DebtDirection = "receivable"
)

// Valid reports whether the direction is one of the two known values.
func (d DebtDirection) Valid() bool {
	return d == Payable || d == Receivable
}

// DebtStatus is the lifecycle state of a debt. The only transition is
// active -> paid, and paid is terminal.
type DebtStatus string

const (
	DebtActive DebtStatus = "active"
	DebtPaid   DebtStatus = "paid"
)

// Debt represents a payable or receivable owned by one user.
// RemainingAmount starts equal to Amount and decreases with each settlement;
// the debt flips to paid when it reaches zero.
type Debt struct {
	DebtID           string          `json:"debtID" db:"debt_id"` // Primary Key (UUID)
	UserID           string          `json:"userID" db:"user_id"`
	Direction        DebtDirection   `json:"direction" db:"direction"`
	CounterpartyName string          `json:"counterpartyName" db:"counterparty_name"`
	Description      string          `json:"description" db:"description"`
	Amount           decimal.Decimal `json:"amount" db:"amount"` // Original owed amount, > 0
	RemainingAmount  decimal.Decimal `json:"remainingAmount" db:"remaining_amount"`
	DueOn            time.Time       `json:"dueOn" db:"due_on"`
	Status           DebtStatus      `json:"status" db:"status"`
	Version          int64           `json:"version" db:"version"` // Optimistic locking
	AuditFields
}

// IsActive reports whether the debt still counts toward ledger totals.
func (d Debt) IsActive() bool {
	return d.Status != DebtPaid
}
