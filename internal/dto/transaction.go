package dto

import (
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest carries the entry form for a new cash-flow record.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Kind        string          `json:"kind" binding:"required,oneof=income expense"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	OccurredOn  string          `json:"occurredOn" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
}

// ListTransactionsRequest carries the query filters for the transaction list.
type ListTransactionsRequest struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=income expense"`
	Category string `form:"category"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Search   string `form:"q"`
	Limit    int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// TransactionResponse is the externally visible shape of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OccurredOn    string          `json:"occurredOn"`
	ReceiptURL    *string         `json:"receiptURL,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		Kind:          string(t.Kind),
		Category:      t.Category,
		Description:   t.Description,
		OccurredOn:    t.OccurredOn.Format("2006-01-02"),
		ReceiptURL:    t.ReceiptURL,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
