package summary

import (
	"sort"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryShare is one category's slice of total expenses.
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"` // round(amount/total*100)
}

var oneHundred = decimal.NewFromInt(100)

// CategoryBreakdown groups expense transactions by category label, ranks by
// amount descending and truncates to topN (topN <= 0 means no truncation).
// Ties keep the order categories first appeared in the input. When there is
// no expense data at all the result is empty, never a division by zero.
func CategoryBreakdown(txns []domain.Transaction, topN int) []CategoryShare {
	totals := make(map[string]decimal.Decimal)
	var order []string // first-seen order, for stable ties
	total := decimal.Zero

	for _, t := range txns {
		if t.Kind != domain.Expense {
			continue
		}
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	if total.IsZero() {
		return nil
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, cat := range order {
		amount := totals[cat]
		shares = append(shares, CategoryShare{
			Category:   cat,
			Amount:     amount,
			Percentage: amount.Div(total).Mul(oneHundred).Round(0).IntPart(),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})

	if topN > 0 && len(shares) > topN {
		shares = shares[:topN]
	}
	return shares
}
