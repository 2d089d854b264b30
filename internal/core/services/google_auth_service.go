package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/financebook/financebook/internal/apperrors"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// googleAuthService implements the GoogleAuthSvcFacade interface. It verifies
// ID tokens the mobile client obtains directly, and runs the authorization-code
// exchange for the web client.
type googleAuthService struct {
	BaseService
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleAuthService creates a new Google auth service.
func NewGoogleAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

func (s *googleAuthService) VerifyIDToken(ctx context.Context, idTokenString string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, apperrors.NewAppError(500, "google sign-in is not configured", nil)
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		// idtoken errors are descriptive ("idtoken: token expired" etc).
		s.LogError(ctx, err, "Google ID token validation failed")
		return nil, apperrors.NewAppError(401, fmt.Sprintf("google ID token validation failed: %v", err), err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, apperrors.NewValidationFailedError("google token carries no email claim")
	}
	if name == "" {
		name = email
	}

	return &portssvc.GoogleIdentity{
		ProviderUserID: payload.Subject,
		Email:          email,
		Name:           name,
	}, nil
}

func (s *googleAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleClientSecret == "" {
		return nil, apperrors.NewAppError(500, "google sign-in is not configured", nil)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Google authorization code exchange failed")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			return nil, apperrors.NewValidationFailedError("invalid or expired authorization code")
		}
		return nil, apperrors.NewAppError(502, "failed to exchange authorization code with google", err)
	}

	// Google returns the ID token alongside the access token in the web flow.
	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return nil, apperrors.NewAppError(502, "google token response carries no ID token", nil)
	}

	return s.VerifyIDToken(ctx, idTokenString)
}
