package dto

import (
	"time"

	"github.com/financebook/financebook/internal/core/domain"
)

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	BusinessName string `json:"businessName" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
}

// LoginRequest carries the sign-in form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token obtained by the client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code from the web flow.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse returns the access token; the refresh token travels in an
// HTTP-only cookie.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the externally visible shape of a user.
type UserResponse struct {
	UserID       string  `json:"userID"`
	Name         string  `json:"name"`
	BusinessName string  `json:"businessName"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	AvatarURL    *string `json:"avatarURL,omitempty"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Email:        u.Email,
		Role:         string(u.Role),
		AvatarURL:    u.AvatarURL,
	}
}
