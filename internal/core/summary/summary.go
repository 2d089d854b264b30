// Package summary holds the pure aggregation functions behind the dashboard
// and report endpoints. Everything here is a plain computation over slices
// already fetched from the store; nothing writes back.
package summary

import (
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSummary is the all-time balance plus the current calendar month's
// income and expense totals.
type BalanceSummary struct {
	Balance      decimal.Decimal `json:"balance"`
	MonthIncome  decimal.Decimal `json:"monthIncome"`
	MonthExpense decimal.Decimal `json:"monthExpense"`
}

// Balance reduces a transaction list into the all-time balance and the
// income/expense totals for the calendar month containing now. Input order is
// irrelevant; an empty list yields zeros.
func Balance(txns []domain.Transaction, now time.Time) BalanceSummary {
	s := BalanceSummary{
		Balance:      decimal.Zero,
		MonthIncome:  decimal.Zero,
		MonthExpense: decimal.Zero,
	}
	for _, t := range txns {
		inMonth := t.OccurredOn.Year() == now.Year() && t.OccurredOn.Month() == now.Month()
		if t.Kind == domain.Income {
			s.Balance = s.Balance.Add(t.Amount)
			if inMonth {
				s.MonthIncome = s.MonthIncome.Add(t.Amount)
			}
		} else {
			s.Balance = s.Balance.Sub(t.Amount)
			if inMonth {
				s.MonthExpense = s.MonthExpense.Add(t.Amount)
			}
		}
	}
	return s
}

// MonthBucket is one fixed calendar-month slot in the yearly series.
type MonthBucket struct {
	Month   string          `json:"month"` // "Jan".."Dec"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlySeries buckets a year's transactions into 12 fixed month slots,
// Jan through Dec regardless of input order. Transactions outside the target
// year are ignored. Profit is income minus expense per bucket.
func MonthlySeries(txns []domain.Transaction, year int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i] = MonthBucket{
			Month:   monthLabels[i],
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Profit:  decimal.Zero,
		}
	}
	for _, t := range txns {
		if t.OccurredOn.Year() != year {
			continue
		}
		i := int(t.OccurredOn.Month()) - 1
		if t.Kind == domain.Income {
			buckets[i].Income = buckets[i].Income.Add(t.Amount)
		} else {
			buckets[i].Expense = buckets[i].Expense.Add(t.Amount)
		}
	}
	for i := range buckets {
		buckets[i].Profit = buckets[i].Income.Sub(buckets[i].Expense)
	}
	return buckets
}
