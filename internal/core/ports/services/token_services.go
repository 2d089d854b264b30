package services

import (
	"context"
	"time"

	"github.com/financebook/financebook/internal/core/domain"
)

// TokenSvcFacade handles access and refresh token issuance and validation.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	// Only a hash of the returned raw token is ever stored.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the
	// stored hash and expiry, returning the user on success.
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)
}

// GoogleIdentity is the subset of a verified Google ID token the app uses.
type GoogleIdentity struct {
	ProviderUserID string
	Email          string
	Name           string
}

// GoogleAuthSvcFacade verifies Google sign-ins, either from an ID token the
// client already holds or from an authorization code in the web flow.
type GoogleAuthSvcFacade interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)

	// ExchangeCode redeems an OAuth authorization code with Google and
	// returns the verified identity carried in the resulting ID token.
	ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error)
}
