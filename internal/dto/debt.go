package dto

import (
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest carries the form for a new payable or receivable.
type CreateDebtRequest struct {
	Direction        string          `json:"direction" binding:"required,oneof=payable receivable"`
	CounterpartyName string          `json:"counterpartyName" binding:"required,max=100"`
	Description      string          `json:"description" binding:"max=500"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	DueOn            string          `json:"dueOn" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
}

// ListDebtsRequest carries the query filters for the debt list.
type ListDebtsRequest struct {
	Direction string `form:"direction" binding:"omitempty,oneof=payable receivable"`
	Status    string `form:"status" binding:"omitempty,oneof=active paid"`
}

// SettleDebtRequest carries a payment (payable) or collection (receivable)
// against a debt. Amount must not exceed the remaining amount.
type SettleDebtRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note" binding:"max=200"`
}

// DebtResponse is the externally visible shape of a debt, including the
// derived due-date fields.
type DebtResponse struct {
	DebtID           string          `json:"debtID"`
	Direction        string          `json:"direction"`
	CounterpartyName string          `json:"counterpartyName"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	DueOn            string          `json:"dueOn"`
	Status           string          `json:"status"`
	DaysUntilDue     int             `json:"daysUntilDue"`
	IsOverdue        bool            `json:"isOverdue"`
}

// ToDebtResponse converts a domain debt, deriving the due-date fields
// against today.
func ToDebtResponse(d *domain.Debt, today time.Time) DebtResponse {
	return DebtResponse{
		DebtID:           d.DebtID,
		Direction:        string(d.Direction),
		CounterpartyName: d.CounterpartyName,
		Description:      d.Description,
		Amount:           d.Amount,
		RemainingAmount:  d.RemainingAmount,
		DueOn:            d.DueOn.Format("2006-01-02"),
		Status:           string(d.Status),
		DaysUntilDue:     summary.DaysUntilDue(d.DueOn, today),
		IsOverdue:        summary.IsOverdue(*d, today),
	}
}

// DebtListResponse pairs the filtered debts with the ledger totals over the
// owner's active set.
type DebtListResponse struct {
	Debts  []DebtResponse     `json:"debts"`
	Totals summary.DebtTotals `json:"totals"`
}

// ToDebtListResponse converts filtered debts plus totals.
func ToDebtListResponse(debts []domain.Debt, totals summary.DebtTotals, today time.Time) DebtListResponse {
	resp := DebtListResponse{
		Debts:  make([]DebtResponse, len(debts)),
		Totals: totals,
	}
	for i := range debts {
		resp.Debts[i] = ToDebtResponse(&debts[i], today)
	}
	return resp
}

// SettlementResponse returns the updated debt and the cash-flow transaction
// the settlement produced.
type SettlementResponse struct {
	Debt        DebtResponse        `json:"debt"`
	Transaction TransactionResponse `json:"transaction"`
}
