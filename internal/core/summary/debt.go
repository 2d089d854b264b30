package summary

import (
	"math"
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtTotals is the net position over all active (non-paid) debts.
type DebtTotals struct {
	TotalPayable    decimal.Decimal `json:"totalPayable"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	Net             decimal.Decimal `json:"net"` // receivable - payable
}

// LedgerTotals sums the remaining amounts of active debts by direction.
// Paid debts are excluded regardless of due date.
func LedgerTotals(debts []domain.Debt) DebtTotals {
	t := DebtTotals{
		TotalPayable:    decimal.Zero,
		TotalReceivable: decimal.Zero,
	}
	for _, d := range debts {
		if !d.IsActive() {
			continue
		}
		if d.Direction == domain.Payable {
			t.TotalPayable = t.TotalPayable.Add(d.RemainingAmount)
		} else {
			t.TotalReceivable = t.TotalReceivable.Add(d.RemainingAmount)
		}
	}
	t.Net = t.TotalReceivable.Sub(t.TotalPayable)
	return t
}

// DaysUntilDue is ceil((dueOn - today) / 1 day). Negative means overdue.
func DaysUntilDue(dueOn, today time.Time) int {
	return int(math.Ceil(dueOn.Sub(today).Hours() / 24))
}

// IsOverdue reports whether an active debt is past its due date. Paid debts
// are never overdue.
func IsOverdue(d domain.Debt, today time.Time) bool {
	return d.IsActive() && DaysUntilDue(d.DueOn, today) < 0
}
