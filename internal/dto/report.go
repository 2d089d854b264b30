package dto

import (
	"time"

	"github.com/financebook/financebook/internal/core/summary"
	"github.com/shopspring/decimal"
)

// YearlyReportResponse is the full report view: monthly series, category
// ranking, tax estimates and the next payable debts.
type YearlyReportResponse struct {
	Year          int                     `json:"year"`
	Series        []summary.MonthBucket   `json:"series"`
	TopCategories []CategoryShareResponse `json:"topCategories"`
	TotalIncome   decimal.Decimal         `json:"totalIncome"`
	TotalExpense  decimal.Decimal         `json:"totalExpense"`
	NetProfit     decimal.Decimal         `json:"netProfit"`
	Taxes         []summary.TaxEstimate   `json:"taxes"`
	UpcomingDebts []DebtResponse          `json:"upcomingDebts"`
}

// ToYearlyReportResponse converts the assembled report.
func ToYearlyReportResponse(r *summary.YearlyReport, today time.Time) YearlyReportResponse {
	resp := YearlyReportResponse{
		Year:          r.Year,
		Series:        r.Series,
		TopCategories: ToCategoryShareResponses(r.TopCategories),
		TotalIncome:   r.TotalIncome,
		TotalExpense:  r.TotalExpense,
		NetProfit:     r.NetProfit,
		Taxes:         r.Taxes,
		UpcomingDebts: make([]DebtResponse, len(r.UpcomingDebts)),
	}
	for i := range r.UpcomingDebts {
		resp.UpcomingDebts[i] = ToDebtResponse(&r.UpcomingDebts[i], today)
	}
	return resp
}
