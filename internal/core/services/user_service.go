package services

import (
	"context"
	"errors"
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

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	fileStore portsrepo.FileStore
	analytics *analytics.Client
}

// UserServiceOption is a functional option for the user service.
type UserServiceOption func(*userService)

// WithUserFileStore adds the avatar storage dependency.
func WithUserFileStore(store portsrepo.FileStore) UserServiceOption {
	return func(s *userService) {
		s.fileStore = store
	}
}

// WithUserAnalytics adds the analytics dependency.
func WithUserAnalytics(client *analytics.Client) UserServiceOption {
	return func(s *userService) {
		s.analytics = client
	}
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewConflictError("email " + req.Email + " is already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing email")
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleOwner,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	if s.analytics != nil {
		s.analytics.Enqueue(user.UserID, analytics.EventUserRegistered, map[string]any{
			"provider": string(domain.ProviderLocal),
		})
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so responses don't leak which
			// emails are registered.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if user.AuthProvider != domain.ProviderLocal || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) GetOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up Google user")
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		BusinessName:   name,
		Email:          email,
		Role:           domain.RoleOwner,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to save Google user", slog.String("user_id", newUser.UserID))
		return nil, err
	}

	if s.analytics != nil {
		s.analytics.Enqueue(newUser.UserID, analytics.EventUserRegistered, map[string]any{
			"provider": string(domain.ProviderGoogle),
		})
	}

	s.LogInfo(ctx, "Google user created", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BusinessName != nil {
		user.BusinessName = *req.BusinessName
	}
	if err := s.userRepo.UpdateUserProfile(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.AuthProvider != domain.ProviderLocal {
		return apperrors.NewValidationFailedError("password changes only apply to local accounts")
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password")
		return apperrors.NewAppError(500, "failed to hash password", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		s.LogError(ctx, err, "Failed to store new password hash", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) SetAvatar(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error) {
	if s.fileStore == nil {
		return nil, apperrors.NewAppError(500, "file storage is not configured", nil)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.fileStore.Save(ctx, "avatars", filename, content)
	if err != nil {
		s.LogError(ctx, err, "Failed to store avatar", slog.String("user_id", userID))
		return nil, apperrors.NewAppError(500, "failed to store avatar", err)
	}
	user.AvatarURL = &url
	if err := s.userRepo.UpdateUserProfile(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to record avatar URL", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Avatar updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) StoreRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiry time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiry)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
