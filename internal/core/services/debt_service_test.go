package services_test

import (
	"context"
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

// --- Mock DebtRepository ---
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, userID, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, userID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindDebtsByUser(ctx context.Context, userID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindUpcomingPayables(ctx context.Context, userID string, limit int) ([]domain.Debt, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) ApplySettlement(ctx context.Context, debt domain.Debt, newRemaining decimal.Decimal, newStatus domain.DebtStatus, cashFlow domain.Transaction) error {
	args := m.Called(ctx, debt, newRemaining, newStatus, cashFlow)
	return args.Error(0)
}

// --- Test Suite ---
type DebtServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDebtRepository
	service  portssvc.DebtSvcFacade
	userID   string
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDebtRepository)
	suite.service = services.NewDebtService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *DebtServiceTestSuite) activeDebt(direction domain.DebtDirection, amount, remaining int64) *domain.Debt {
	return &domain.Debt{
		DebtID:           uuid.NewString(),
		UserID:           suite.userID,
		Direction:        direction,
		CounterpartyName: "Toko Sumber Rejeki",
		Amount:           decimal.NewFromInt(amount),
		RemainingAmount:  decimal.NewFromInt(remaining),
		DueOn:            time.Now().AddDate(0, 1, 0),
		Status:           domain.DebtActive,
		Version:          1,
	}
}

func (suite *DebtServiceTestSuite) TestCreateDebt_Success() {
	ctx := context.Background()
	req := dto.CreateDebtRequest{
		Direction:        "payable",
		CounterpartyName: "Supplier Beras",
		Amount:           decimal.NewFromInt(5000000),
		DueOn:            "2026-10-15",
	}

	suite.mockRepo.On("SaveDebt", ctx, mock.MatchedBy(func(d domain.Debt) bool {
		return d.UserID == suite.userID &&
			d.Direction == domain.Payable &&
			d.Amount.Equal(req.Amount) &&
			d.RemainingAmount.Equal(req.Amount) &&
			d.Status == domain.DebtActive &&
			d.Version == 1
	})).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.True(debt.RemainingAmount.Equal(debt.Amount))
	suite.Equal("2026-10-15", debt.DueOn.Format("2006-01-02"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_RejectsNonPositiveAmount() {
	req := dto.CreateDebtRequest{
		Direction:        "payable",
		CounterpartyName: "Supplier Beras",
		Amount:           decimal.Zero,
		DueOn:            "2026-10-15",
	}

	_, err := suite.service.CreateDebt(context.Background(), suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDebt")
}

func (suite *DebtServiceTestSuite) TestSettleDebt_PartialPaymentKeepsDebtActive() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Payable, 5000000, 5000000)
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(2000000)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Once()
	suite.mockRepo.On("ApplySettlement", ctx, *debt,
		mock.MatchedBy(func(r decimal.Decimal) bool { return r.Equal(decimal.NewFromInt(3000000)) }),
		domain.DebtActive,
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Kind == domain.Expense &&
				t.Category == domain.DebtPaymentCategory &&
				t.Amount.Equal(req.Amount) &&
				t.UserID == suite.userID
		}),
	).Return(nil).Once()

	updated, txn, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().NoError(err)
	suite.True(updated.RemainingAmount.Equal(decimal.NewFromInt(3000000)))
	suite.Equal(domain.DebtActive, updated.Status)
	suite.Equal(int64(2), updated.Version)
	suite.Equal(domain.Expense, txn.Kind)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSettleDebt_FullPaymentFlipsToPaid() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Payable, 5000000, 1500000)
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(1500000)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Once()
	suite.mockRepo.On("ApplySettlement", ctx, *debt,
		mock.MatchedBy(func(r decimal.Decimal) bool { return r.IsZero() }),
		domain.DebtPaid,
		mock.AnythingOfType("domain.Transaction"),
	).Return(nil).Once()

	updated, _, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.DebtPaid, updated.Status)
	suite.True(updated.RemainingAmount.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSettleDebt_CollectionRecordsIncome() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Receivable, 3000000, 3000000)
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(1000000), Note: "Cicilan pertama"}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Once()
	suite.mockRepo.On("ApplySettlement", ctx, *debt,
		mock.Anything,
		domain.DebtActive,
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Kind == domain.Income &&
				t.Category == domain.DebtCollectionCategory &&
				t.Description == "Cicilan pertama"
		}),
	).Return(nil).Once()

	_, txn, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.Income, txn.Kind)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSettleDebt_RejectsOverpayment() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Payable, 5000000, 1000000)
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(1000001)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Once()

	_, _, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplySettlement")
}

func (suite *DebtServiceTestSuite) TestSettleDebt_PaidDebtIsConflict() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Payable, 5000000, 0)
	debt.Status = domain.DebtPaid
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(100)}

	// A paid debt is terminal, so the stale-version retry must not kick in.
	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Once()

	_, _, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindDebtByID", 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplySettlement")
}

func (suite *DebtServiceTestSuite) TestSettleDebt_RetriesOnceOnStaleVersion() {
	ctx := context.Background()
	stale := suite.activeDebt(domain.Payable, 5000000, 5000000)
	fresh := *stale
	fresh.Version = 2
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(2000000)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, stale.DebtID).Return(stale, nil).Once()
	suite.mockRepo.On("ApplySettlement", ctx, *stale, mock.Anything, domain.DebtActive, mock.Anything).
		Return(apperrors.NewConflictError("debt was modified concurrently")).Once()

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, stale.DebtID).Return(&fresh, nil).Once()
	suite.mockRepo.On("ApplySettlement", ctx, fresh, mock.Anything, domain.DebtActive, mock.Anything).
		Return(nil).Once()

	updated, _, err := suite.service.SettleDebt(ctx, suite.userID, stale.DebtID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(3), updated.Version)
	suite.True(updated.RemainingAmount.Equal(decimal.NewFromInt(3000000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSettleDebt_SecondStaleReadSurfacesConflict() {
	ctx := context.Background()
	debt := suite.activeDebt(domain.Payable, 5000000, 5000000)
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(2000000)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debt.DebtID).Return(debt, nil).Twice()
	suite.mockRepo.On("ApplySettlement", ctx, *debt, mock.Anything, domain.DebtActive, mock.Anything).
		Return(apperrors.NewConflictError("debt was modified concurrently")).Twice()

	_, _, err := suite.service.SettleDebt(ctx, suite.userID, debt.DebtID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestSettleDebt_NotFoundPassesThrough() {
	ctx := context.Background()
	debtID := uuid.NewString()
	req := dto.SettleDebtRequest{Amount: decimal.NewFromInt(100)}

	suite.mockRepo.On("FindDebtByID", ctx, suite.userID, debtID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.SettleDebt(ctx, suite.userID, debtID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DebtServiceTestSuite) TestListDebts_FilteredViewKeepsFullTotals() {
	ctx := context.Background()
	payable := suite.activeDebt(domain.Payable, 5000000, 5000000)
	receivable := suite.activeDebt(domain.Receivable, 3000000, 3000000)

	direction := domain.Payable
	suite.mockRepo.On("FindDebtsByUser", ctx, suite.userID, portsrepo.DebtFilter{Direction: &direction}).
		Return([]domain.Debt{*payable}, nil).Once()
	suite.mockRepo.On("FindDebtsByUser", ctx, suite.userID, portsrepo.DebtFilter{}).
		Return([]domain.Debt{*payable, *receivable}, nil).Once()

	debts, totals, err := suite.service.ListDebts(ctx, suite.userID, dto.ListDebtsRequest{Direction: "payable"})

	suite.Require().NoError(err)
	suite.Len(debts, 1)
	suite.True(totals.TotalPayable.Equal(decimal.NewFromInt(5000000)))
	suite.True(totals.TotalReceivable.Equal(decimal.NewFromInt(3000000)))
	suite.True(totals.Net.Equal(decimal.NewFromInt(-2000000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
