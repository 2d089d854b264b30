package summary

import (
	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// YearlyReport aggregates one calendar year of bookkeeping into the shape the
// report view and the exporters consume.
type YearlyReport struct {
	Year          int
	Series        []MonthBucket
	TopCategories []CategoryShare
	TotalIncome   decimal.Decimal
	TotalExpense  decimal.Decimal
	NetProfit     decimal.Decimal
	Taxes         []TaxEstimate
	UpcomingDebts []domain.Debt
}

// BuildYearlyReport assembles the yearly report from an owner's full
// transaction list and their upcoming payable debts. Only transactions dated
// inside the target year contribute; the category ranking is truncated to
// topN.
func BuildYearlyReport(txns []domain.Transaction, upcoming []domain.Debt, year, topN int) *YearlyReport {
	inYear := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.OccurredOn.Year() == year {
			inYear = append(inYear, t)
		}
	}

	series := MonthlySeries(inYear, year)
	totalIncome, totalExpense := decimal.Zero, decimal.Zero
	for _, b := range series {
		totalIncome = totalIncome.Add(b.Income)
		totalExpense = totalExpense.Add(b.Expense)
	}

	return &YearlyReport{
		Year:          year,
		Series:        series,
		TopCategories: CategoryBreakdown(inYear, topN),
		TotalIncome:   totalIncome,
		TotalExpense:  totalExpense,
		NetProfit:     totalIncome.Sub(totalExpense),
		Taxes:         TaxEstimates(totalIncome),
		UpcomingDebts: upcoming,
	}
}
