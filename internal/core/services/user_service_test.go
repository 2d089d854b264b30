package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/services"
	"github.com/financebook/financebook/internal/dto"
	"github.com/financebook/financebook/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:         "Budi Santoso",
		BusinessName: "Warung Budi",
		Email:        "budi@example.com",
		Password:     "rahasia-sekali",
	}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email &&
			u.Role == domain.RoleOwner &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleOwner, user.Role)
	suite.Equal("Warung Budi", user.BusinessName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "budi@example.com"}

	suite.mockRepo.On("FindUserByEmail", ctx, existing.Email).Return(existing, nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name: "Budi", BusinessName: "Warung", Email: existing.Email, Password: "rahasia-sekali",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, _ := utils.HashPassword("benar-sekali")
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "budi@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := suite.service.Authenticate(ctx, user.Email, "salah-total")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailLooksLikeWrongPassword() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "ghost@example.com", "apapun")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetOrCreateGoogleUser_CreatesOnFirstSignIn() {
	ctx := context.Background()
	providerID := "google-sub-123"

	suite.mockRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, providerID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID != nil && *u.ProviderUserID == providerID &&
			u.Role == domain.RoleOwner
	})).Return(nil).Once()

	user, err := suite.service.GetOrCreateGoogleUser(ctx, providerID, "budi@gmail.com", "Budi")

	suite.Require().NoError(err)
	suite.Equal("budi@gmail.com", user.Email)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetOrCreateGoogleUser_ReturnsExisting() {
	ctx := context.Background()
	providerID := "google-sub-123"
	existing := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle}

	suite.mockRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, providerID).
		Return(existing, nil).Once()

	user, err := suite.service.GetOrCreateGoogleUser(ctx, providerID, "budi@gmail.com", "Budi")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestChangePassword_RejectsGoogleAccount() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), AuthProvider: domain.ProviderGoogle}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	err := suite.service.ChangePassword(ctx, user.UserID, dto.ChangePasswordRequest{
		CurrentPassword: "x", NewPassword: "baru-sekali",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
