package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/platform/config"
	"github.com/financebook/financebook/internal/utils"
)

const refreshTokenBytes = 32

// tokenService implements the TokenSvcFacade interface.
type tokenService struct {
	BaseService
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to sign access token", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken mints a fresh opaque token, stores its hash and expiry
// against the user, and returns the raw token for the cookie. Issuing a new
// token invalidates the previous one.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to generate refresh token", err)
	}
	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.StoreRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiry); err != nil {
		return "", time.Time{}, err
	}
	return raw, expiry, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RefreshTokenHash == nil || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(refreshToken, *user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}
