package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/handlers"
	"github.com/financebook/financebook/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error) {
	args := m.Called(ctx, providerUserID, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockUserService) SetAvatar(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error) {
	args := m.Called(ctx, userID, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) StoreRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockUserSvc  *MockUserService
	mockTokenSvc *MockTokenService
	cookieName   string
	userID       string
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.userID = uuid.NewString()
	suite.mockUserSvc = new(MockUserService)
	suite.mockTokenSvc = new(MockTokenService)
	suite.cookieName = "rtid"

	cfg := &config.Config{
		JWTSecret:              "test-secret-key-that-is-long-enough",
		IsProduction:           true, // skip swagger route setup
		RefreshTokenCookieName: suite.cookieName,
		RefreshTokenCookiePath: "/api/v1/auth",
	}
	services := &portssvc.ServiceContainer{
		User:  suite.mockUserSvc,
		Token: suite.mockTokenSvc,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogout_ForgedCookieLeavesSessionIntact() {
	cookie := &http.Cookie{Name: suite.cookieName, Value: suite.userID + ":forged-token"}

	suite.mockTokenSvc.On("ValidateRefreshToken", mock.Anything, suite.userID, "forged-token").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, cookie)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "ClearRefreshToken")
	suite.mockTokenSvc.AssertExpectations(suite.T())

	// The browser-side cookie is still discarded.
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == suite.cookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	suite.True(cleared, "expected the refresh cookie to be expired")
}

func (suite *AuthHandlerTestSuite) TestLogout_ValidCookieClearsSession() {
	user := &domain.User{UserID: suite.userID, Email: "warung@example.com"}
	cookie := &http.Cookie{Name: suite.cookieName, Value: suite.userID + ":live-token"}

	suite.mockTokenSvc.On("ValidateRefreshToken", mock.Anything, suite.userID, "live-token").
		Return(user, nil).Once()
	suite.mockUserSvc.On("ClearRefreshToken", mock.Anything, suite.userID).Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, cookie)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_MalformedCookieTouchesNothing() {
	cookie := &http.Cookie{Name: suite.cookieName, Value: "no-separator"}

	w := suite.postJSON("/api/v1/auth/logout", nil, cookie)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "ValidateRefreshToken")
	suite.mockUserSvc.AssertNotCalled(suite.T(), "ClearRefreshToken")
}

func (suite *AuthHandlerTestSuite) TestLogin_RateLimitAfterFiveAttempts() {
	body := dto.LoginRequest{Email: "warung@example.com", Password: "wrong-password"}

	suite.mockUserSvc.On("Authenticate", mock.Anything, body.Email, body.Password).
		Return(nil, apperrors.ErrUnauthorized).Times(5)

	for i := 0; i < 5; i++ {
		w := suite.postJSON("/api/v1/auth/login", body, nil)
		suite.Equal(http.StatusUnauthorized, w.Code)
	}

	w := suite.postJSON("/api/v1/auth/login", body, nil)
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
