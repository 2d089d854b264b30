package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/financebook/financebook/internal/analytics"
	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/utils"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvcFacade interface.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	fileStore       portsrepo.FileStore
	analytics       *analytics.Client
}

// TransactionServiceOption is a functional option for the transaction service.
type TransactionServiceOption func(*transactionService)

// WithTransactionFileStore adds the receipt storage dependency.
func WithTransactionFileStore(store portsrepo.FileStore) TransactionServiceOption {
	return func(s *transactionService) {
		s.fileStore = store
	}
}

// WithTransactionAnalytics adds the analytics dependency.
func WithTransactionAnalytics(client *analytics.Client) TransactionServiceOption {
	return func(s *transactionService) {
		s.analytics = client
	}
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{transactionRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.IsNegative() {
		return nil, apperrors.NewValidationFailedError("amount must not be negative")
	}
	occurredOn, err := utils.ParseDateValue(req.OccurredOn)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("occurredOn must be a YYYY-MM-DD date")
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		Kind:          domain.TransactionKind(req.Kind),
		Category:      req.Category,
		Description:   req.Description,
		OccurredOn:    occurredOn,
		CreatedAt:     time.Now(),
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("user_id", userID))
		return nil, err
	}

	if s.analytics != nil {
		s.analytics.Enqueue(userID, analytics.EventTransactionCreated, map[string]any{
			"kind":     req.Kind,
			"category": req.Category,
		})
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", req.Kind))
	return &txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, req dto.ListTransactionsRequest) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		Category: req.Category,
		Search:   req.Search,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if req.Kind != "" {
		kind := domain.TransactionKind(req.Kind)
		filter.Kind = &kind
	}
	if req.From != "" {
		from, err := utils.ParseDateValue(req.From)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("from must be a YYYY-MM-DD date")
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := utils.ParseDateValue(req.To)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("to must be a YYYY-MM-DD date")
		}
		filter.To = &to
	}

	txns, err := s.transactionRepo.FindTransactionsByUser(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID),
			slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) AttachReceipt(ctx context.Context, userID, transactionID, filename string, content io.Reader) (string, error) {
	if s.fileStore == nil {
		return "", apperrors.NewAppError(500, "file storage is not configured", nil)
	}

	// Ownership check before touching disk.
	if _, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID); err != nil {
		return "", err
	}

	url, err := s.fileStore.Save(ctx, "receipts", filename, content)
	if err != nil {
		s.LogError(ctx, err, "Failed to store receipt",
			slog.String("transaction_id", transactionID))
		return "", apperrors.NewAppError(500, "failed to store receipt", err)
	}

	if err := s.transactionRepo.SetReceiptURL(ctx, userID, transactionID, url); err != nil {
		s.LogError(ctx, err, "Failed to link receipt",
			slog.String("transaction_id", transactionID))
		return "", err
	}

	s.LogInfo(ctx, "Receipt attached", slog.String("transaction_id", transactionID))
	return url, nil
}
