package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string) error {
	args := m.Called(ctx, userID, transactionID, receiptURL)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// fakeFileStore returns a fixed URL for any upload.
type fakeFileStore struct {
	url string
}

func (f fakeFileStore) Save(ctx context.Context, kind string, filename string, content io.Reader) (string, error) {
	return f.url, nil
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	userID   string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(1500000),
		Kind:        "income",
		Category:    "Pendapatan Penjualan",
		Description: "Penjualan harian",
		OccurredOn:  "2026-01-15",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.UserID == suite.userID &&
			t.Kind == domain.Income &&
			t.Amount.Equal(req.Amount) &&
			t.OccurredOn.Format("2006-01-02") == "2026-01-15"
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("Pendapatan Penjualan", txn.Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNegativeAmount() {
	req := dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(-500),
		Kind:       "expense",
		Category:   "Utilitas",
		OccurredOn: "2026-01-15",
	}

	_, err := suite.service.CreateTransaction(context.Background(), suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsBadDate() {
	req := dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(500),
		Kind:       "expense",
		Category:   "Utilitas",
		OccurredOn: "15-01-2026",
	}

	_, err := suite.service.CreateTransaction(context.Background(), suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BuildsFilter() {
	ctx := context.Background()
	req := dto.ListTransactionsRequest{
		Kind:   "expense",
		From:   "2026-01-01",
		To:     "2026-01-31",
		Search: "beras",
		Limit:  20,
	}

	suite.mockRepo.On("FindTransactionsByUser", ctx, suite.userID, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.Kind != nil && *f.Kind == domain.Expense &&
			f.From != nil && f.From.Format("2006-01-02") == "2026-01-01" &&
			f.To != nil && f.To.Format("2006-01-02") == "2026-01-31" &&
			f.Search == "beras" && f.Limit == 20
	})).Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFoundPassesThrough() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockRepo.On("DeleteTransaction", ctx, suite.userID, txnID).
		Return(apperrors.NewNotFoundError("transaction not found")).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestAttachReceipt_OwnershipCheckedFirst() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	svc := services.NewTransactionService(suite.mockRepo,
		services.WithTransactionFileStore(fakeFileStore{}))

	_, err := svc.AttachReceipt(ctx, suite.userID, txnID, "nota.jpg", strings.NewReader("img"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestAttachReceipt_Success() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Amount:        decimal.NewFromInt(250000),
		Kind:          domain.Expense,
		Category:      "Inventaris",
		OccurredOn:    time.Now(),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.userID, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("SetReceiptURL", ctx, suite.userID, txn.TransactionID, "http://localhost:8080/uploads/receipts/nota.jpg").Return(nil).Once()

	svc := services.NewTransactionService(suite.mockRepo,
		services.WithTransactionFileStore(fakeFileStore{url: "http://localhost:8080/uploads/receipts/nota.jpg"}))

	url, err := svc.AttachReceipt(ctx, suite.userID, txn.TransactionID, "nota.jpg", strings.NewReader("img"))

	suite.Require().NoError(err)
	suite.Equal("http://localhost:8080/uploads/receipts/nota.jpg", url)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
