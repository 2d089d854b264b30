package dto

import (
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/shopspring/decimal"
)

// CategoryShareResponse is one dashboard breakdown entry with its resolved
// presentation style.
type CategoryShareResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
	Icon       string          `json:"icon"`
	Color      string          `json:"color"`
}

// ToCategoryShareResponses attaches styles to a ranked breakdown.
func ToCategoryShareResponses(shares []summary.CategoryShare) []CategoryShareResponse {
	out := make([]CategoryShareResponse, len(shares))
	for i, s := range shares {
		style := summary.StyleFor(s.Category)
		out[i] = CategoryShareResponse{
			Category:   s.Category,
			Amount:     s.Amount,
			Percentage: s.Percentage,
			Icon:       style.Icon,
			Color:      style.Color,
		}
	}
	return out
}
