package services

import (
	"context"
	"io"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/dto"
)

// TransactionSvcFacade exposes the cash-flow record operations.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a new cash-flow record.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ListTransactions returns the owner's records, newest first, filtered.
	ListTransactions(ctx context.Context, userID string, req dto.ListTransactionsRequest) ([]domain.Transaction, error)

	// DeleteTransaction removes one record scoped to the owner.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// AttachReceipt stores a receipt image and links it to the record,
	// returning the public URL.
	AttachReceipt(ctx context.Context, userID, transactionID, filename string, content io.Reader) (string, error)
}
