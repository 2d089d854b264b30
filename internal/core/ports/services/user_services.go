package services

import (
	"context"
	"io"
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/dto"
)

// UserSvcFacade exposes account and profile operations.
type UserSvcFacade interface {
	// Register creates a local account; the registering user becomes Owner.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email+password and returns the user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetOrCreateGoogleUser resolves a verified Google identity to a local
	// user, creating one on first sign-in.
	GetOrCreateGoogleUser(ctx context.Context, providerUserID, email, name string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateProfile applies the editable profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// ChangePassword verifies the current password and stores the new hash.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error

	// SetAvatar stores an avatar image and records its public URL.
	SetAvatar(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error)

	// StoreRefreshToken persists the hash and expiry of a rotated token.
	StoreRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}
