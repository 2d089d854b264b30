package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/handlers"
	"github.com/financebook/financebook/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) ListDebts(ctx context.Context, userID string, req dto.ListDebtsRequest) ([]domain.Debt, summary.DebtTotals, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, summary.DebtTotals{}, args.Error(2)
	}
	return args.Get(0).([]domain.Debt), args.Get(1).(summary.DebtTotals), args.Error(2)
}

func (m *MockDebtService) SettleDebt(ctx context.Context, userID, debtID string, req dto.SettleDebtRequest) (*domain.Debt, *domain.Transaction, error) {
	args := m.Called(ctx, userID, debtID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Debt), args.Get(1).(*domain.Transaction), args.Error(2)
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Test Suite ---
type DebtHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockDebtService
	jwtSecret   string
	userID      string
}

func (suite *DebtHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockService = new(MockDebtService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger route setup
	}
	services := &portssvc.ServiceContainer{Debt: suite.mockService}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *DebtHandlerTestSuite) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *DebtHandlerTestSuite) TestCreateDebt_Success() {
	reqBody := dto.CreateDebtRequest{
		Direction:        "payable",
		CounterpartyName: "Supplier Beras",
		Amount:           decimal.NewFromInt(5000000),
		DueOn:            "2026-10-15",
	}
	created := &domain.Debt{
		DebtID:           uuid.NewString(),
		UserID:           suite.userID,
		Direction:        domain.Payable,
		CounterpartyName: reqBody.CounterpartyName,
		Amount:           reqBody.Amount,
		RemainingAmount:  reqBody.Amount,
		DueOn:            time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Status:           domain.DebtActive,
	}

	suite.mockService.On("CreateDebt", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateDebtRequest) bool {
		return r.Direction == reqBody.Direction && r.Amount.Equal(reqBody.Amount) && r.DueOn == reqBody.DueOn
	})).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/debts", reqBody, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.DebtResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.DebtID, resp.DebtID)
	suite.Equal("2026-10-15", resp.DueOn)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestCreateDebt_RequiresAuth() {
	w := suite.doJSON(http.MethodPost, "/api/v1/debts", dto.CreateDebtRequest{}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateDebt")
}

func (suite *DebtHandlerTestSuite) TestListDebts_ReturnsTotals() {
	debts := []domain.Debt{{
		DebtID:          uuid.NewString(),
		UserID:          suite.userID,
		Direction:       domain.Payable,
		Amount:          decimal.NewFromInt(5000000),
		RemainingAmount: decimal.NewFromInt(5000000),
		DueOn:           time.Now().AddDate(0, 0, 10),
		Status:          domain.DebtActive,
	}}
	totals := summary.DebtTotals{
		TotalPayable:    decimal.NewFromInt(5000000),
		TotalReceivable: decimal.NewFromInt(3000000),
		Net:             decimal.NewFromInt(-2000000),
	}

	suite.mockService.On("ListDebts", mock.Anything, suite.userID, dto.ListDebtsRequest{}).
		Return(debts, totals, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/debts", nil, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DebtListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Debts, 1)
	suite.True(resp.Totals.Net.Equal(decimal.NewFromInt(-2000000)))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_Success() {
	debtID := uuid.NewString()
	reqBody := dto.SettleDebtRequest{Amount: decimal.NewFromInt(2000000)}
	updated := &domain.Debt{
		DebtID:          debtID,
		UserID:          suite.userID,
		Direction:       domain.Payable,
		Amount:          decimal.NewFromInt(5000000),
		RemainingAmount: decimal.NewFromInt(3000000),
		DueOn:           time.Now().AddDate(0, 1, 0),
		Status:          domain.DebtActive,
	}
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		Amount:        reqBody.Amount,
		Kind:          domain.Expense,
		Category:      domain.DebtPaymentCategory,
		OccurredOn:    time.Now(),
	}

	suite.mockService.On("SettleDebt", mock.Anything, suite.userID, debtID, mock.MatchedBy(func(r dto.SettleDebtRequest) bool {
		return r.Amount.Equal(reqBody.Amount)
	})).Return(updated, txn, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/debts/"+debtID+"/settle", reqBody, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(debtID, resp.Debt.DebtID)
	suite.Equal("Bayar Utang", resp.Transaction.Category)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_OverpaymentRejected() {
	debtID := uuid.NewString()
	reqBody := dto.SettleDebtRequest{Amount: decimal.NewFromInt(9000000)}

	suite.mockService.On("SettleDebt", mock.Anything, suite.userID, debtID, mock.MatchedBy(func(r dto.SettleDebtRequest) bool {
		return r.Amount.Equal(reqBody.Amount)
	})).Return(nil, nil, apperrors.NewValidationFailedError("amount exceeds the remaining 5000000")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/debts/"+debtID+"/settle", reqBody, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_OtherUsersDebtIs404() {
	debtID := uuid.NewString()
	reqBody := dto.SettleDebtRequest{Amount: decimal.NewFromInt(100)}

	suite.mockService.On("SettleDebt", mock.Anything, suite.userID, debtID, mock.MatchedBy(func(r dto.SettleDebtRequest) bool {
		return r.Amount.Equal(reqBody.Amount)
	})).Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/debts/"+debtID+"/settle", reqBody, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestDebtHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
