package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a transaction is money in or money out.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the two known values.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// Transaction represents a single cash-flow record owned by one user.
// Transactions are immutable once created; the only mutation is deletion.
type Transaction struct {
	TransactionID string          `json:"transactionID" db:"transaction_id"` // Primary Key (UUID)
	UserID        string          `json:"userID" db:"user_id"`               // Owning identity
	Amount        decimal.Decimal `json:"amount" db:"amount"`                // Non-negative
	Kind          TransactionKind `json:"kind" db:"kind"`
	Category      string          `json:"category" db:"category"` // Free-text label
	Description   string          `json:"description" db:"description"`
	OccurredOn    time.Time       `json:"occurredOn" db:"occurred_on"` // Date of the cash flow, not the insert
	ReceiptURL    *string         `json:"receiptURL,omitempty" db:"receipt_url"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// Categories offered by the entry form. Free-text values are still accepted;
// these only drive client pickers and the style mapping.
var (
	IncomeCategories = []string{
		"Gaji",
		"Pendapatan Penjualan",
		"Hasil Investasi",
		"Pinjaman",
		"Lainnya",
	}
	ExpenseCategories = []string{
		"Biaya Operasional",
		"Inventaris",
		"Gaji Karyawan",
		"Pemasaran",
		"Utilitas",
		"Sewa",
		"Transportasi",
		"Makanan & Minuman",
		"Lainnya",
	}
)

// Categories stamped onto the cash-flow records synthesized by debt settlement.
const (
	DebtPaymentCategory    = "Bayar Utang"
	DebtCollectionCategory = "Terima Piutang"
)
