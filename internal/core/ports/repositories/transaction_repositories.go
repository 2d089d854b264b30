package repositories

import (
	"context"
	"time"

	"github.com/financebook/financebook/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter"; Limit <= 0 means no limit.
type TransactionFilter struct {
	Kind     *domain.TransactionKind
	Category string
	From     *time.Time
	To       *time.Time
	Search   string // matched against description and category
	Limit    int
	Offset   int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction scoped to its owner.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByUser retrieves an owner's transactions, newest first.
	FindTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SetReceiptURL attaches an uploaded receipt to an existing transaction.
	SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string) error

	// DeleteTransaction removes a transaction scoped to its owner.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
